package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-k", "sqlite", "-d", "ledger.db", "-s", "secret",
			"-t", "5", "-l", "20", "-m", "200", "-f", "2.5", "-v", "debug",
			"-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint",
		},
			expected: &Config{
				EndpointAddrGRPC:    "127.0.0.1:9090",
				StorageDriver:       "sqlite",
				DatabaseDSN:         "ledger.db",
				SecretKey:           "secret",
				OperatorTokenTTL:    5 * time.Minute,
				HistoryDefaultLimit: 20,
				HistoryMaxLimit:     200,
				FaucetMaxAmount:     2.5,
				LogLevel:            "debug",
				S3RootUser:          "user",
				S3RootPassword:      "password",
				S3Bucket:            "bucket",
				S3Region:            "us-west-1",
				S3BaseEndpoint:      "http://endpoint",
			}},
		{name: "unknown flags are ignored", args: []string{"cmd", "-x", "1", "-a", ":1"},
			expected: &Config{EndpointAddrGRPC: ":1"}},
		{name: "bad int panics", args: []string{"cmd", "-l", "many"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
