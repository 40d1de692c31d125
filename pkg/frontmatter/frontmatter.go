// Package frontmatter extracts the name and description of a skill from the
// metadata block at the top of its SKILL.md file.
//
// Only single-line "key: value" pairs are recognised. Multi-line YAML values
// (block scalars, folded strings, lists) are not supported and never will be:
// the block is scanned line by line rather than decoded as YAML.
package frontmatter

import "strings"

const delimiter = "---"

// Frontmatter holds the fields a skill file must declare
type Frontmatter struct {
	Name        string
	Description string
}

// Parse scans the leading metadata block of content. It returns nil when the
// content has no block, the block is empty, or either name or description is
// missing. A nil result means "not a skill" and is not an error.
func Parse(content string) *Frontmatter {
	body, ok := block(content)
	if !ok || strings.TrimSpace(body) == "" {
		return nil
	}

	name := field(body, "name")
	description := field(body, "description")
	if name == "" || description == "" {
		return nil
	}

	return &Frontmatter{
		Name:        name,
		Description: description,
	}
}

// block returns the text between the opening and closing delimiter lines.
// The opening delimiter must be the first line of content.
func block(content string) (string, bool) {
	lines := strings.Split(content, "\n")
	if len(lines) < 2 || trimLine(lines[0]) != delimiter {
		return "", false
	}

	for i := 1; i < len(lines); i++ {
		if trimLine(lines[i]) == delimiter {
			return strings.Join(lines[1:i], "\n"), true
		}
	}

	return "", false
}

// field returns the trimmed, unquoted value of the first "key:" line
func field(body, key string) string {
	prefix := key + ":"
	for _, line := range strings.Split(body, "\n") {
		line = trimLine(line)
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		return unquote(strings.TrimSpace(line[len(prefix):]))
	}
	return ""
}

func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' || first == '\'') && first == last {
			return strings.TrimSpace(value[1 : len(value)-1])
		}
	}
	return value
}

func trimLine(line string) string {
	return strings.TrimSpace(strings.TrimSuffix(line, "\r"))
}
