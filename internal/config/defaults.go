package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "127.0.0.1",
			Port:             3000,
			Development:      false,
			MaxRequestSize:   10485760,
			RateLimit:        100,
			RateLimitWindowM: 15,
		},
		Storage: StorageConfig{
			Path:       "~/.config/inkwell",
			SQLiteFile: "events.db",
		},
		Posts: PostsConfig{
			Dir:    "_posts",
			Output: "dist/postData.json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
