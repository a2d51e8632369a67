package update

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/recurcal/internal/ics"
)

var errNoExportPath = errors.New("export: no output path")

// exportSchedule writes the iCalendar rendering of src to path through a
// temporary file so a failed write never truncates an earlier export.
func exportSchedule(src ics.Source, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errNoExportPath
	}
	body, err := ics.Render(src, ics.Options{})
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(body), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
