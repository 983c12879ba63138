// Package cli implements the inkwell command line: the API service, the
// authoring prompt, the feed renderer, and a status summary.
package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Serve  *ServeCommand
	Write  *WriteCommand
	Render *RenderCommand
	Status *StatusCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "inkwell"
	parser.LongDescription = "Minimal blog/event publishing toolkit: author posts, render the feed, serve the event API."

	cmds := &commands{
		Serve:  &ServeCommand{globals: &globals, version: version},
		Write:  &WriteCommand{globals: &globals, version: version},
		Render: &RenderCommand{globals: &globals, version: version},
		Status: &StatusCommand{globals: &globals, version: version},
	}

	parser.AddCommand("serve", "Run the event API service", "Run the HTTP API service over the event store.", cmds.Serve)
	parser.AddCommand("write", "Author a new post", "Interactively collect a title and body and write a new post file.", cmds.Write)
	parser.AddCommand("render", "Generate the feed document", "Aggregate all posts into the consolidated feed document.", cmds.Render)
	parser.AddCommand("status", "Show store statistics", "Show event store statistics and post repository summary.", cmds.Status)

	return parser, &globals, cmds
}

// Run is the main entry point for the inkwell CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("inkwell %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
