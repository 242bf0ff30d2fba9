package wgconf

import (
	"fmt"
	"os"
	"strings"
)

// Load reads a template into lines. Splitting on "\n" and joining back
// reproduces the input exactly, trailing newline included; CR bytes of
// CRLF files stay attached to their lines.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	return strings.Split(string(data), "\n"), nil
}

// Render joins lines back into file content.
func Render(lines []string) string {
	return strings.Join(lines, "\n")
}
