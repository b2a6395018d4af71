package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/cloudsync/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   base URL of the backend REST API (default from Config)
//	-w string   websocket endpoint URL (default from Config)
//	-s string   path to the local store file (default from Config)
//	-i int      token refresh check interval in seconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-w", "-s", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "u", cfg.APIBaseURL, "base URL of the backend REST API")
	fs.StringVar(&cfg.SocketURL, "w", cfg.SocketURL, "websocket endpoint URL")
	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "path to the local store file")
	refreshInterval := fs.Int("i", int(cfg.TokenRefreshInterval.Seconds()), "token refresh check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.TokenRefreshInterval = time.Duration(*refreshInterval) * time.Second
}
