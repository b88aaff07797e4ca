// Package changelog inserts dated release sections into Markdown
// changelog files.
package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/conn-castle/git-semver/internal/messages"
)

var timeNow = time.Now

// Options control the content of a new changelog entry.
type Options struct {
	// Commits holds the commit subjects to list, in insertion order.
	Commits []string
	// Description, when set, replaces the commit list with a single bullet.
	Description string
	// IgnorePrefixes drops commit subjects starting with any of these.
	IgnorePrefixes []string
}

// Update inserts a dated entry for version into the changelog at path.
// The entry lands before the first existing "## [" heading, or at the
// end of the file when none exists. A missing changelog is reported to
// out and skipped, never an error.
func Update(path, version string, opts Options, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(out, messages.ChangelogMissingFmt, path)
			return nil
		}
		return err
	}
	content := insertEntry(string(data), buildEntry(version, opts))
	return os.WriteFile(path, []byte(content), 0o644)
}

func buildEntry(version string, opts Options) string {
	var bullets []string
	if opts.Description != "" {
		bullets = []string{opts.Description}
	} else {
		for _, subject := range opts.Commits {
			if hasAnyPrefix(subject, opts.IgnorePrefixes) {
				continue
			}
			bullets = append(bullets, subject)
		}
		if len(bullets) == 0 {
			bullets = []string{messages.ChangelogNoNotable}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## [%s] - %s\n\n", version, timeNow().Format("2006-01-02"))
	for _, bullet := range bullets {
		fmt.Fprintf(&b, "- %s\n", bullet)
	}
	return b.String()
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func insertEntry(content, entry string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "## [") {
			head := strings.Join(lines[:i], "\n")
			tail := strings.Join(lines[i:], "\n")
			return head + "\n" + entry + "\n" + tail
		}
	}
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + "\n" + entry
}
