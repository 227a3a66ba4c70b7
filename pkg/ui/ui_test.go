package ui_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Syzzle07/NMS-Mod-Manager/pkg/ui"
)

func TestNewRenderer(t *testing.T) {
	t.Run("creates_renderer_for_each_format", func(t *testing.T) {
		var buf bytes.Buffer
		for _, format := range []ui.Format{ui.FormatTerminal, ui.FormatText, ui.FormatJSON} {
			renderer, err := ui.NewRenderer(format, &buf)
			require.NoError(t, err, "format %s", format)
			assert.NotNil(t, renderer)
		}
	})

	t.Run("auto_with_plain_writer_falls_back_to_text", func(t *testing.T) {
		var buf bytes.Buffer
		renderer, err := ui.NewRenderer(ui.FormatAuto, &buf)
		require.NoError(t, err)

		require.NoError(t, renderer.RenderMessage("hello"))
		assert.Equal(t, "hello\n", buf.String())
	})

	t.Run("rejects_unknown_format", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := ui.NewRenderer(ui.Format("yaml"), &buf)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown format")
	})
}
