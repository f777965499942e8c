package download

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/paramon-tech/tgfetch/internal/telegram"
)

// Filter decides whether a declared filename should be downloaded.
type Filter interface {
	Match(name string) bool
}

// FilterFunc adapts a plain function to Filter.
type FilterFunc func(name string) bool

func (f FilterFunc) Match(name string) bool { return f(name) }

// NewPatternFilter compiles expr as a case-insensitive regular expression.
func NewPatternFilter(expr string) (Filter, error) {
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, fmt.Errorf("compiling file pattern %q: %w", expr, err)
	}
	return FilterFunc(re.MatchString), nil
}

// SuffixFilter matches names that contain sentinel and end in ext, both
// compared case-insensitively.
func SuffixFilter(sentinel, ext string) Filter {
	sentinel = strings.ToLower(sentinel)
	ext = strings.ToLower(ext)
	return FilterFunc(func(name string) bool {
		lower := strings.ToLower(name)
		return strings.HasSuffix(lower, ext) && strings.Contains(strings.TrimSuffix(lower, ext), sentinel)
	})
}

// ExtractFilename returns the filename declared by the message's document.
func ExtractFilename(msg telegram.Message) (string, bool) {
	if msg.Attachment == nil || msg.Attachment.FileName == "" {
		return "", false
	}
	return msg.Attachment.FileName, true
}
