package regfile

import (
	"strings"

	"github.com/alexisbeaulieu97/regsync/internal/store"
)

// Render serializes a store back to registry-export text with the version 5
// header. A nil store renders as just the header, mirroring an export of a
// key that does not exist.
func Render(s *store.Store) string {
	var b strings.Builder
	b.WriteString(Header5)
	b.WriteString("\n")

	for _, path := range s.Paths() {
		b.WriteString("\n[")
		b.WriteString(path)
		b.WriteString("]\n")

		sec, _ := s.Section(path)
		for _, name := range sec.Names() {
			value, _ := sec.Value(name)
			if name == DefaultEntryName {
				b.WriteString(DefaultEntryName)
			} else {
				b.WriteString(`"`)
				b.WriteString(escapeName(name))
				b.WriteString(`"`)
			}
			b.WriteString("=")
			b.WriteString(value)
			b.WriteString("\n")
		}
	}

	return b.String()
}

func escapeName(name string) string {
	name = strings.ReplaceAll(name, `\`, `\\`)
	return strings.ReplaceAll(name, `"`, `\"`)
}
