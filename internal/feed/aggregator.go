// Package feed builds the consolidated feed document from the post
// repository: every post rendered, sorted by descending ordinal, with the
// distinct tag set collected across all posts.
package feed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/runnerr0/inkwell/internal/posts"
)

// Post is one rendered entry in the feed document.
type Post struct {
	PostID int      `json:"post_id"`
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Date   string   `json:"date"`
	Tags   []string `json:"tags,omitempty"`
}

// Document is the aggregation output, fully regenerated on every run.
type Document struct {
	Posts         []Post   `json:"posts"`
	Count         int      `json:"count"`
	LastGenerated string   `json:"lastGenerated"`
	Streams       []string `json:"streams"`
}

// Aggregator reads the post repository and emits the feed document.
type Aggregator struct {
	repo     *posts.Repository
	renderer *Renderer
	logger   zerolog.Logger
}

// NewAggregator builds an Aggregator over the given repository.
func NewAggregator(repo *posts.Repository, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		repo:     repo,
		renderer: NewRenderer(),
		logger:   logger,
	}
}

// Run aggregates every post file into a Document. A file that fails to
// parse or render is logged and skipped; it reduces Count but never
// aborts the run.
func (a *Aggregator) Run() (*Document, error) {
	started := time.Now().UTC()

	names, err := a.repo.List()
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Posts:         []Post{},
		LastGenerated: started.Format(time.RFC3339),
		Streams:       []string{},
	}
	seen := map[string]bool{}

	for _, name := range names {
		post, err := a.repo.Load(name)
		if err != nil {
			a.logger.Warn().Err(err).Str("file", name).Msg("skipping malformed post file")
			continue
		}

		rendered, err := a.renderer.Render(post.Body)
		if err != nil {
			a.logger.Warn().Err(err).Str("file", name).Msg("skipping unrenderable post file")
			continue
		}

		// Streams keeps each distinct tag once, in encounter order.
		for _, tag := range post.Tags {
			if !seen[tag] {
				seen[tag] = true
				doc.Streams = append(doc.Streams, tag)
			}
		}

		doc.Posts = append(doc.Posts, Post{
			PostID: post.PostID,
			Title:  post.Title,
			Body:   rendered,
			Date:   post.Date,
			Tags:   post.Tags,
		})
		doc.Count++
	}

	sort.Slice(doc.Posts, func(i, j int) bool {
		return doc.Posts[i].PostID > doc.Posts[j].PostID
	})

	return doc, nil
}

// WriteDocument serializes the document to path, fully replacing any
// prior output. The parent directory is created if missing.
func WriteDocument(doc *Document, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode feed document: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write feed document: %w", err)
	}

	return nil
}
