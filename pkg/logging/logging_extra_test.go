package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	done := LogOperationStart(logger, "extract-archive")
	done()

	output := buf.String()
	if !strings.Contains(output, "extract-archive") {
		t.Errorf("expected operation name in output, got: %s", output)
	}
	if !strings.Contains(output, "Operation started") {
		t.Errorf("expected start message in output, got: %s", output)
	}
	if !strings.Contains(output, "Operation completed") {
		t.Errorf("expected completion message in output, got: %s", output)
	}
	if !strings.Contains(output, "duration") {
		t.Errorf("expected duration field in output, got: %s", output)
	}
}
