package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/runnerr0/inkwell/internal/config"
	"github.com/runnerr0/inkwell/internal/posts"
)

// Execute implements the go-flags Commander interface for WriteCommand.
func (c *WriteCommand) Execute(args []string) error {
	// The prompt cannot be rendered without a terminal; authoring is a
	// silent no-op in non-interactive execution.
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return nil
	}

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

	repo := posts.NewRepository(dir)
	return c.executeWithInput(repo, os.Stdin)
}

// executeWithInput runs the prompt against a provided reader (used by tests).
func (c *WriteCommand) executeWithInput(repo *posts.Repository, in io.Reader) error {
	reader := bufio.NewReader(in)

	fmt.Print("title: ")
	title, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("reading title: %w", err)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title must not be empty")
	}

	fmt.Println("write a post (end with Ctrl-D):")
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			lines = append(lines, strings.TrimRight(line, "\n"))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}
	}

	post := &posts.Post{
		Title: title,
		Body:  strings.Join(lines, "\n"),
		Date:  time.Now().Format("2006-01-02"),
	}

	name, err := repo.Write(post)
	if err != nil {
		return fmt.Errorf("writing post: %w", err)
	}

	if c.globals.JSON {
		out := map[string]any{
			"file":  name,
			"title": post.Title,
			"date":  post.Date,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("Wrote %s\n", name)
	return nil
}
