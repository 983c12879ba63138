package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/inkwell/internal/config"
	"github.com/runnerr0/inkwell/internal/feed"
	"github.com/runnerr0/inkwell/internal/posts"
)

// Execute implements the go-flags Commander interface for RenderCommand.
func (c *RenderCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	dir := cfg.Posts.Dir
	if c.PostsDir != "" {
		dir = c.PostsDir
	}
	dir, err = config.ExpandPath(dir)
	if err != nil {
		return err
	}

	out := cfg.Posts.Output
	if c.Out != "" {
		out = c.Out
	}
	out, err = config.ExpandPath(out)
	if err != nil {
		return err
	}

	logger := newLogger(cfg, c.globals.Verbose)

	repo := posts.NewRepository(dir)
	agg := feed.NewAggregator(repo, logger)

	doc, err := agg.Run()
	if err != nil {
		return fmt.Errorf("aggregating posts: %w", err)
	}

	if err := feed.WriteDocument(doc, out); err != nil {
		return err
	}

	// Diagnostic dump of the events table, debug level only.
	if c.DumpDB {
		if err := c.dumpEvents(cfg); err != nil {
			logger.Warn().Err(err).Msg("events table dump failed")
		}
	}

	if c.globals.JSON {
		summary := map[string]any{
			"output":  out,
			"count":   doc.Count,
			"streams": doc.Streams,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	fmt.Printf("%s generated with %d posts\n", out, doc.Count)
	return nil
}

// dumpEvents logs every row of the events table at debug level.
func (c *RenderCommand) dumpEvents(cfg *config.Config) error {
	logger := newLogger(cfg, c.globals.Verbose)

	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	events, err := store.ListEvents(context.Background())
	if err != nil {
		return err
	}

	for _, e := range events {
		logger.Debug().
			Int64("id", e.ID).
			Str("date", e.Date).
			Str("type", e.Type).
			Msg("event")
	}

	return nil
}
