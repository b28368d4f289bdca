package docmeta

import (
	"strings"
)

// StripRTF reduces RTF markup to plain text so the text extractor can run
// over sidecar .rtf files. It drops control words, group braces, and the
// header destinations (fonttbl, colortbl, stylesheet, info).
func StripRTF(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	skipDepth := 0
	depth := 0
	i := 0

	for i < len(content) {
		c := content[i]
		switch c {
		case '{':
			depth++
			if skipDepth == 0 && isSkippedDestination(content[i+1:]) {
				skipDepth = depth
			}
			i++
		case '}':
			if skipDepth == depth {
				skipDepth = 0
			}
			if depth > 0 {
				depth--
			}
			i++
		case '\\':
			word, rest := readControl(content[i+1:])
			if skipDepth == 0 {
				switch word {
				case "par", "line", "sect", "page":
					b.WriteByte('\n')
				case "tab":
					b.WriteByte(' ')
				case "'":
					// Hex-escaped byte; the two hex digits were consumed.
				case "\\", "{", "}":
					b.WriteString(word)
				}
			}
			i = len(content) - len(rest)
		case '\r', '\n':
			i++
		default:
			if skipDepth == 0 {
				b.WriteByte(c)
			}
			i++
		}
	}

	return strings.TrimSpace(b.String())
}

var skippedDestinations = []string{`\fonttbl`, `\colortbl`, `\stylesheet`, `\info`, `\*`, `\pict`}

func isSkippedDestination(s string) bool {
	for _, dest := range skippedDestinations {
		if strings.HasPrefix(s, dest) {
			return true
		}
	}
	return false
}

// readControl consumes a control word or symbol after a backslash, returning
// the word and the remaining input. Numeric parameters and the single
// optional trailing space are consumed too.
func readControl(s string) (string, string) {
	if s == "" {
		return "", s
	}

	// Control symbols are a single non-alphabetic character.
	first := s[0]
	if !isAlpha(first) {
		if first == '\'' && len(s) >= 3 {
			return "'", s[3:]
		}
		return string(first), s[1:]
	}

	i := 0
	for i < len(s) && isAlpha(s[i]) {
		i++
	}
	word := s[:i]
	for i < len(s) && (s[i] == '-' || (s[i] >= '0' && s[i] <= '9')) {
		i++
	}
	if i < len(s) && s[i] == ' ' {
		i++
	}
	return word, s[i:]
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
