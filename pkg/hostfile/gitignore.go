package hostfile

import "strings"

// EnsureGitignoreEntry returns content with entry appended on its own line,
// unless an equivalent entry is already present. Entries are compared
// ignoring a leading "/" and a trailing "/".
func EnsureGitignoreEntry(content, entry string) string {
	want := normalizeIgnore(entry)
	for _, line := range strings.Split(content, "\n") {
		if normalizeIgnore(line) == want {
			return content
		}
	}

	switch {
	case content == "":
		return entry + "\n"
	case strings.HasSuffix(content, "\n"):
		return content + entry + "\n"
	default:
		return content + "\n" + entry + "\n"
	}
}

// EnsureGitignore adds entry to the .gitignore file at path, creating it
// if necessary
func EnsureGitignore(path, entry string) (*Change, error) {
	return Update(path, func(content string) (string, error) {
		return EnsureGitignoreEntry(content, entry), nil
	})
}

func normalizeIgnore(line string) string {
	line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
	line = strings.TrimPrefix(line, "/")
	return strings.TrimSuffix(line, "/")
}
