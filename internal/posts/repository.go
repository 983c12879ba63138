package posts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Repository is a directory of post files. The aggregator treats it as
// read-only input; only the authoring CLI writes to it.
type Repository struct {
	dir string
}

// NewRepository returns a Repository rooted at dir.
func NewRepository(dir string) *Repository {
	return &Repository{dir: dir}
}

// Dir returns the repository's root directory.
func (r *Repository) Dir() string {
	return r.dir
}

// List returns the names of all post files in the repository, sorted
// lexically for a stable enumeration order.
func (r *Repository) List() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("read posts directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	return names, nil
}

// Load reads and decodes a single post file. The returned post's PostID
// is populated from the file name's ordinal prefix.
func (r *Repository) Load(name string) (*Post, error) {
	ordinal, err := ParseOrdinal(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(r.dir, name))
	if err != nil {
		return nil, fmt.Errorf("read post %s: %w", name, err)
	}

	var post Post
	if err := json.Unmarshal(data, &post); err != nil {
		return nil, fmt.Errorf("parse post %s: %w", name, err)
	}
	post.PostID = ordinal

	return &post, nil
}

// Write stores a new post under the next ordinal and returns the file
// name it was written as. The next ordinal is the number of post files
// already present.
func (r *Repository) Write(post *Post) (string, error) {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("create posts directory: %w", err)
	}

	existing, err := r.List()
	if err != nil {
		return "", err
	}

	name := Filename(len(existing), post.Date, post.Title)

	data, err := json.MarshalIndent(post, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode post: %w", err)
	}

	if err := os.WriteFile(filepath.Join(r.dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("write post %s: %w", name, err)
	}

	return name, nil
}
