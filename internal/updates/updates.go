// Package updates rewrites version strings into tracked files after a
// bump, driven by the config's updates map.
package updates

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/conn-castle/git-semver/internal/messages"
)

// Rule is the tagged variant behind an updates entry: either the whole
// file is replaced with the version, or lines are patched after each of
// a list of literal prefixes.
type Rule struct {
	WholeFile bool
	Prefixes  []string
}

// UnmarshalJSON accepts the two config forms: the string "file" and an
// array of prefix strings.
func (r *Rule) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "file" {
			return fmt.Errorf(messages.UpdatesUnknownRuleFmt, s)
		}
		*r = Rule{WholeFile: true}
		return nil
	}
	var prefixes []string
	if err := json.Unmarshal(data, &prefixes); err != nil {
		return errors.New(messages.UpdatesInvalidRule)
	}
	*r = Rule{Prefixes: prefixes}
	return nil
}

// versionToken captures an optional quote, the old version, and the
// closing quote, so the original quoting style survives the rewrite.
const versionToken = `(['"]?)\d+\.\d+\.\d+(['"]?)`

// Apply rewrites every configured target with version. Missing targets
// are reported to out and skipped; partial repositories must not abort
// an otherwise-successful bump. Targets are processed in path order.
func Apply(rules map[string]Rule, version string, out io.Writer) error {
	paths := make([]string, 0, len(rules))
	for path := range rules {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintf(out, messages.UpdatesFileMissingFmt, path)
				continue
			}
			return err
		}
		content := applyRule(string(data), rules[path], version)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func applyRule(content string, rule Rule, version string) string {
	if rule.WholeFile {
		return version + "\n"
	}
	for _, prefix := range rule.Prefixes {
		re := regexp.MustCompile(regexp.QuoteMeta(prefix) + versionToken)
		// "$" in the prefix would otherwise be read as a template reference.
		replacement := strings.ReplaceAll(prefix, "$", "$$") + "${1}" + version + "${2}"
		content = re.ReplaceAllString(content, replacement)
	}
	return content
}
