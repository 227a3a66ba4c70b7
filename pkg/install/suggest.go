package install

import (
	"path/filepath"
	"strings"

	"github.com/Syzzle07/NMS-Mod-Manager/pkg/types"
)

// SuggestModName derives a mod folder name from the top level of dir, in
// this order: the stem of a sole .pak file, then the name of a sole
// directory, otherwise empty. The suggestion never changes how contents
// are classified; it only seeds the name the user is asked to confirm.
func SuggestModName(fsys types.FS, dir string) string {
	entries, err := resolveFS(fsys).ReadDir(dir)
	if err != nil {
		return ""
	}

	var dirs, paks []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pak") {
			paks = append(paks, entry.Name())
		}
	}

	if len(paks) == 1 {
		return strings.TrimSuffix(paks[0], filepath.Ext(paks[0]))
	}
	if len(dirs) == 1 {
		return dirs[0]
	}
	return ""
}
