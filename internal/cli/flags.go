package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// ServeCommand — run the event API service.
type ServeCommand struct {
	Host string `long:"host" description:"Override listen host"`
	Port int    `long:"port" description:"Override listen port"`
	Dev  bool   `long:"dev" description:"Run with permissive CORS and reduced security headers"`

	globals *GlobalFlags
	version string
}

// WriteCommand — author a new post interactively.
type WriteCommand struct {
	PostsDir string `long:"posts-dir" description:"Override the posts directory"`

	globals *GlobalFlags
	version string
}

// RenderCommand — aggregate the post repository into the feed document.
type RenderCommand struct {
	PostsDir string `long:"posts-dir" description:"Override the posts directory"`
	Out      string `long:"out" description:"Override the feed output path"`
	DumpDB   bool   `long:"dump-db" description:"Also log the events table at debug level"`

	globals *GlobalFlags
	version string
}

// StatusCommand — show event store statistics and post count.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}
