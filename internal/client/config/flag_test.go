package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd", "-u", "http://api.local/api", "-w", "ws://api.local/ws", "-s", "alt.db", "-i", "10"}, expectPanic: false,
			expected: &Config{APIBaseURL: "http://api.local/api", SocketURL: "ws://api.local/ws", StorePath: "alt.db", TokenRefreshInterval: 10 * time.Second}},
		{name: "Test2 incorrect refresh interval", args: []string{"cmd", "-u", "http://api.local/api", "-i", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Equal(t, tt.expected, config)
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
