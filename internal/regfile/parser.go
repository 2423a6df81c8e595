// Package regfile reads and writes the registry-export text format: a
// header line followed by [Key\Path] sections holding "name"=value entries.
// Entry values are kept as verbatim right-hand-side text; the reconciler
// compares them as exact strings, so nothing is decoded or normalized.
package regfile

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf16"

	regsyncerrors "github.com/alexisbeaulieu97/regsync/pkg/errors"

	"github.com/alexisbeaulieu97/regsync/internal/store"
)

// Header5 is the header emitted by modern registry exports.
const Header5 = "Windows Registry Editor Version 5.00"

// Header4 is the legacy REGEDIT4 header.
const Header4 = "REGEDIT4"

// DefaultEntryName is the store-level name used for a section's default
// value, written as @= in the export format.
const DefaultEntryName = "@"

// ParseFile reads and parses a registry-export artifact from disk.
func ParseFile(path string) (*store.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, regsyncerrors.NewParseError(path, 0, err)
	}
	return Parse(path, data)
}

// Parse parses registry-export text. The path parameter is used only for
// error reporting.
func Parse(path string, data []byte) (*store.Store, error) {
	text := decode(data)
	lines := strings.Split(text, "\n")

	s := store.New()
	headerSeen := false
	currentSection := ""

	for i := 0; i < len(lines); i++ {
		lineNo := i + 1
		line := strings.TrimRight(lines[i], "\r")
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, ";") {
			continue
		}

		if !headerSeen {
			if trimmed != Header5 && trimmed != Header4 {
				return nil, regsyncerrors.NewParseError(path, lineNo, fmt.Errorf("missing registry export header"))
			}
			headerSeen = true
			continue
		}

		if strings.HasPrefix(trimmed, "[") {
			section, err := parseSectionLine(trimmed)
			if err != nil {
				return nil, regsyncerrors.NewParseError(path, lineNo, err)
			}
			currentSection = section
			s.AddSection(section)
			continue
		}

		if currentSection == "" {
			return nil, regsyncerrors.NewParseError(path, lineNo, fmt.Errorf("entry before any section"))
		}

		// Hex data continues across lines ending in a backslash.
		entryText := trimmed
		for strings.HasSuffix(entryText, "\\") && i+1 < len(lines) {
			i++
			entryText = strings.TrimSuffix(entryText, "\\") + strings.TrimSpace(strings.TrimRight(lines[i], "\r"))
		}

		name, value, err := parseEntryLine(entryText)
		if err != nil {
			return nil, regsyncerrors.NewParseError(path, lineNo, err)
		}
		s.Set(currentSection, name, value)
	}

	if !headerSeen {
		return nil, regsyncerrors.NewParseError(path, 0, fmt.Errorf("empty artifact"))
	}
	if s.Len() == 0 {
		return nil, regsyncerrors.NewParseError(path, 0, fmt.Errorf("artifact contains no sections"))
	}

	return s, nil
}

func parseSectionLine(line string) (string, error) {
	if !strings.HasSuffix(line, "]") {
		return "", fmt.Errorf("unterminated section header")
	}
	section := line[1 : len(line)-1]
	if section == "" {
		return "", fmt.Errorf("empty section path")
	}
	if strings.HasPrefix(section, "-") {
		return "", fmt.Errorf("deletion sections are not supported")
	}
	return section, nil
}

func parseEntryLine(line string) (string, string, error) {
	if strings.HasPrefix(line, DefaultEntryName) {
		rest := line[len(DefaultEntryName):]
		if !strings.HasPrefix(rest, "=") {
			return "", "", fmt.Errorf("malformed default entry")
		}
		return DefaultEntryName, rest[1:], nil
	}

	if !strings.HasPrefix(line, `"`) {
		return "", "", fmt.Errorf("entry name must be quoted")
	}

	name, rest, err := readQuotedName(line)
	if err != nil {
		return "", "", err
	}
	if !strings.HasPrefix(rest, "=") {
		return "", "", fmt.Errorf("expected '=' after entry name")
	}
	return name, rest[1:], nil
}

// readQuotedName consumes a double-quoted name honoring \" and \\ escapes,
// returning the unescaped name and the remainder of the line.
func readQuotedName(line string) (string, string, error) {
	var name strings.Builder
	escaped := false

	for i := 1; i < len(line); i++ {
		c := line[i]
		switch {
		case escaped:
			name.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			return name.String(), line[i+1:], nil
		default:
			name.WriteByte(c)
		}
	}
	return "", "", fmt.Errorf("unterminated entry name")
}

// decode strips a UTF-8 BOM or decodes UTF-16LE/BE content; registry exports
// since version 5 are UTF-16LE with a BOM.
func decode(data []byte) string {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return string(data[3:])
	}
	if len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE {
		return decodeUTF16(data[2:], true)
	}
	if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
		return decodeUTF16(data[2:], false)
	}
	return string(data)
}

func decodeUTF16(data []byte, littleEndian bool) string {
	units := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		if littleEndian {
			units = append(units, uint16(data[i])|uint16(data[i+1])<<8)
		} else {
			units = append(units, uint16(data[i])<<8|uint16(data[i+1]))
		}
	}
	return string(utf16.Decode(units))
}
