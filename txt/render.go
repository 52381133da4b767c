package txt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/esc0rtd3w/performous-tools/model"
)

// Render serializes chart back to file form: headers in their retained order,
// then the note lines (behind P markers for multiplayer charts), then the E
// terminator. Lines end with CRLF.
func Render(chart *model.Chart) string {
	var b strings.Builder
	for _, key := range chart.Headers.Keys() {
		value, _ := chart.Headers.Get(key)
		b.WriteString("#" + key + ":" + value + "\r\n")
	}
	switch v := chart.Voices.(type) {
	case *model.Solo:
		writeLines(&b, v.Lines)
	case *model.Duet:
		for _, id := range v.IDs() {
			fmt.Fprintf(&b, "P%d\r\n", id)
			writeLines(&b, v.Players[id])
		}
	}
	b.WriteString("E\r\n")
	return b.String()
}

func writeLines(b *strings.Builder, lines []model.Line) {
	for _, l := range lines {
		b.WriteString(l.String())
		b.WriteString("\r\n")
	}
}

// WriteFile renders chart to path, going through a uniquely named temp file
// in the same directory so a crash mid-write cannot leave a half chart under
// the final name.
func WriteFile(path string, chart *model.Chart) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, uuid.New().String()+".tmp")
	if err := os.WriteFile(tmp, []byte(Render(chart)), 0644); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "writing chart %v", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "writing chart %v", path)
	}
	return nil
}
