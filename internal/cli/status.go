package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/inkwell/internal/config"
	"github.com/runnerr0/inkwell/internal/posts"
	"github.com/runnerr0/inkwell/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version     string          `json:"version"`
	TotalEvents int64           `json:"total_events"`
	OldestEvent string          `json:"oldest_event,omitempty"`
	NewestEvent string          `json:"newest_event,omitempty"`
	TopTypes    []typeCountJSON `json:"top_types"`
	PostCount   int             `json:"post_count"`
	PostsDir    string          `json:"posts_dir"`
}

type typeCountJSON struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store, cfg)
}

// executeWithStore runs status against a provided store (used by tests).
func (c *StatusCommand) executeWithStore(store storage.Store, cfg *config.Config) error {
	stats, err := store.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("reading stats: %w", err)
	}

	postsDir, err := config.ExpandPath(cfg.Posts.Dir)
	if err != nil {
		return err
	}

	postCount := 0
	if names, err := posts.NewRepository(postsDir).List(); err == nil {
		postCount = len(names)
	}

	if c.globals.JSON {
		out := statusJSON{
			Version:     c.version,
			TotalEvents: stats.TotalEvents,
			OldestEvent: stats.OldestDate,
			NewestEvent: stats.NewestDate,
			TopTypes:    []typeCountJSON{},
			PostCount:   postCount,
			PostsDir:    postsDir,
		}
		for _, tc := range stats.TopTypes {
			out.TopTypes = append(out.TopTypes, typeCountJSON{Type: tc.Type, Count: tc.Count})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("inkwell %s\n\n", c.version)
	fmt.Printf("Events:     %d\n", stats.TotalEvents)
	if stats.TotalEvents > 0 {
		fmt.Printf("Date range: %s .. %s\n", stats.OldestDate, stats.NewestDate)
	}
	if len(stats.TopTypes) > 0 {
		fmt.Println("Top types:")
		for _, tc := range stats.TopTypes {
			fmt.Printf("  %-20s %d\n", tc.Type, tc.Count)
		}
	}
	fmt.Printf("Posts:      %d (%s)\n", postCount, postsDir)

	return nil
}
