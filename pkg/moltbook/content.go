package moltbook

import (
	"os"
	"strings"

	"github.com/busse/molt-in-the-mist/pkg/errors"
)

// LoadContent reads a markdown file for posting. A leading H1 line is
// stripped, along with any blank lines directly after it, because the title
// travels separately in the post payload.
func LoadContent(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "read content file %s", path)
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) > 0 && strings.HasPrefix(lines[0], "# ") {
		lines = lines[1:]
		for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
			lines = lines[1:]
		}
	}
	return strings.Join(lines, "\n"), nil
}

// Preview summarizes content for terminal display: the first n characters
// plus a note about how much was elided.
func Preview(content string, n int) (head string, remaining int) {
	runes := []rune(content)
	if len(runes) <= n {
		return content, 0
	}
	return string(runes[:n]), len(runes) - n
}
