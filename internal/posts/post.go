// Package posts manages the directory of authored post files. Each post
// is a self-contained JSON record named {ordinal}_{date}-{slug}.json;
// the ordinal prefix defines the feed sort order.
package posts

import (
	"fmt"
	"strconv"
	"strings"
)

// Post is one authored content record. PostID is derived from the file
// name's ordinal prefix, not stored inside the record itself.
type Post struct {
	PostID int      `json:"post_id,omitempty"`
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Date   string   `json:"date"`
	Tags   []string `json:"tags,omitempty"`
}

// ParseOrdinal extracts the integer ordinal from a post file name: the
// digits before the first underscore.
func ParseOrdinal(name string) (int, error) {
	idx := strings.Index(name, "_")
	if idx <= 0 {
		return 0, fmt.Errorf("no ordinal prefix in %q", name)
	}
	n, err := strconv.Atoi(name[:idx])
	if err != nil {
		return 0, fmt.Errorf("ordinal prefix in %q is not numeric", name)
	}
	return n, nil
}

// Slug converts a post title into its file-name form: spaces replaced
// with hyphens, lower-cased.
func Slug(title string) string {
	return strings.ToLower(strings.ReplaceAll(title, " ", "-"))
}

// Filename builds the storage name for a post: ordinal, date, title slug.
func Filename(ordinal int, date, title string) string {
	return fmt.Sprintf("%d_%s-%s.json", ordinal, date, Slug(title))
}
