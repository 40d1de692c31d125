// Package marker injects, replaces and removes generated blocks inside a
// host markdown file. A block is delimited by a start and an end HTML
// comment line; everything outside the block is preserved byte for byte.
package marker

import (
	"regexp"
	"strings"
)

const (
	docsStartPrefix = "<!-- AGENTS-MD-EMBED-START"
	docsEndPrefix   = "<!-- AGENTS-MD-EMBED-END"
	skillsStart     = "<!-- AGENTS-MD-SKILLS-START -->"
	skillsEnd       = "<!-- AGENTS-MD-SKILLS-END -->"
	commentSuffix   = " -->"
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Markers is the start/end comment pair delimiting one block
type Markers struct {
	Start string
	End   string
}

// DocsMarkers returns the marker pair for a docs index block. A non-empty id
// is appended to both markers so that several providers can each own a
// block in the same file.
func DocsMarkers(id string) Markers {
	suffix := ""
	if id != "" {
		suffix = ":" + id
	}
	return Markers{
		Start: docsStartPrefix + suffix + commentSuffix,
		End:   docsEndPrefix + suffix + commentSuffix,
	}
}

// SkillsMarkers returns the marker pair for the skills index block. Only one
// skills block per file is supported.
func SkillsMarkers() Markers {
	return Markers{Start: skillsStart, End: skillsEnd}
}

// Wrap surrounds body with the marker lines
func (m Markers) Wrap(body string) string {
	return m.Start + "\n" + body + "\n" + m.End
}

// HasBlock reports whether content contains the start marker
func HasBlock(content string, m Markers) bool {
	return strings.Contains(content, m.Start)
}

// Inject replaces the existing block in content with body, or appends a new
// block when there is none. Injecting the same body twice yields the same
// content as injecting it once.
func Inject(content, body string, m Markers) string {
	wrapped := m.Wrap(body)

	start := strings.Index(content, m.Start)
	if start == -1 {
		switch {
		case content == "":
			return wrapped + "\n"
		case strings.HasSuffix(content, "\n"):
			return content + "\n" + wrapped + "\n"
		default:
			return content + "\n\n" + wrapped + "\n"
		}
	}

	end := blockEnd(content, start, m)
	if end == -1 {
		// Dangling start marker: replace just the marker so nothing after it is lost.
		end = start + len(m.Start)
	}

	return content[:start] + wrapped + content[end:]
}

// Remove deletes the block delimited by m. Content without the block is
// returned unchanged. After removal, runs of three or more newlines are
// collapsed to two and the result ends with exactly one newline, or is
// empty when nothing else remains.
func Remove(content string, m Markers) string {
	start := strings.Index(content, m.Start)
	if start == -1 {
		return content
	}

	end := blockEnd(content, start, m)
	if end == -1 {
		end = start + len(m.Start)
	}

	return tidy(content[:start] + content[end:])
}

// RemoveAllDocs deletes every docs block regardless of its identifier. A
// start marker without a matching end marker is treated as malformed and
// only the marker itself is stripped.
func RemoveAllDocs(content string) string {
	if !strings.Contains(content, docsStartPrefix) {
		return content
	}

	var out strings.Builder
	rest := content
	for {
		start := strings.Index(rest, docsStartPrefix)
		if start == -1 {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:start])
		rest = rest[start:]

		m, ok := parseDocsStart(rest)
		if !ok {
			// Not one of our markers, keep it verbatim.
			out.WriteString(docsStartPrefix)
			rest = rest[len(docsStartPrefix):]
			continue
		}

		end := blockEnd(rest, 0, m)
		if end == -1 {
			rest = rest[len(m.Start):]
			continue
		}
		rest = rest[end:]
	}

	return tidy(out.String())
}

// IDs returns the identifiers of all well-formed docs blocks in content, in
// order. The unidentified block is reported as an empty string.
func IDs(content string) []string {
	var ids []string
	rest := content
	for {
		start := strings.Index(rest, docsStartPrefix)
		if start == -1 {
			return ids
		}
		rest = rest[start:]

		m, ok := parseDocsStart(rest)
		if !ok {
			rest = rest[len(docsStartPrefix):]
			continue
		}
		if end := blockEnd(rest, 0, m); end != -1 {
			ids = append(ids, idFromStart(m.Start))
			rest = rest[end:]
			continue
		}
		rest = rest[len(m.Start):]
	}
}

// parseDocsStart reads the docs start marker at the beginning of s and
// returns the marker pair it opens. It reports false when the text only
// shares the marker prefix.
func parseDocsStart(s string) (Markers, bool) {
	line := s
	if nl := strings.IndexByte(line, '\n'); nl != -1 {
		line = line[:nl]
	}

	closeIdx := strings.Index(line, commentSuffix)
	if closeIdx < len(docsStartPrefix) {
		return Markers{}, false
	}

	suffix := line[len(docsStartPrefix):closeIdx]
	if suffix == ":" || (suffix != "" && !strings.HasPrefix(suffix, ":")) {
		return Markers{}, false
	}

	return DocsMarkers(strings.TrimPrefix(suffix, ":")), true
}

func idFromStart(start string) string {
	suffix := strings.TrimSuffix(strings.TrimPrefix(start, docsStartPrefix), commentSuffix)
	return strings.TrimPrefix(suffix, ":")
}

// blockEnd returns the index just past the end marker that follows the start
// marker at start, or -1 when there is none
func blockEnd(content string, start int, m Markers) int {
	searchFrom := start + len(m.Start)
	idx := strings.Index(content[searchFrom:], m.End)
	if idx == -1 {
		return -1
	}
	return searchFrom + idx + len(m.End)
}

func tidy(content string) string {
	content = blankRuns.ReplaceAllString(content, "\n\n")
	content = strings.TrimRight(content, " \t\r\n")
	if content == "" {
		return ""
	}
	return content + "\n"
}
