// Package githubactions writes step outputs in the formats GitHub Actions reads.
package githubactions

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Enabled reports whether the process runs inside a GitHub Actions job.
func Enabled(getenv func(string) string) bool {
	return getenv("GITHUB_ACTIONS") != ""
}

var commandEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")

// SetOutputCommand returns the ::set-output workflow command for name=value.
func SetOutputCommand(name, value string) string {
	return fmt.Sprintf("::set-output name=%s::%s", name, commandEscaper.Replace(value))
}

// OutputEntry returns a $GITHUB_OUTPUT entry for name=value. Multi-line values
// use the heredoc form with a random delimiter.
func OutputEntry(name, value string) string {
	if !strings.ContainsAny(value, "\r\n") {
		return name + "=" + value + "\n"
	}
	delim := "ghadelimiter_" + uuid.NewString()
	return fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delim, value, delim)
}

// AppendOutput appends content to the output file at path, creating it if needed.
func AppendOutput(path, content string) error {
	if path == "" {
		return fmt.Errorf("output file path is empty")
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return f.Close()
}
