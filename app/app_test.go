package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDump(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{"toml", []string{"config", "dump", "-c", "../etc/"}, "[Webserver]"},
		{"json", []string{"config", "dump", "--json", "-c", "../etc/"}, `"Webserver": {`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer

			dumpJSON = false
			rootCmd.SetOut(&out)
			rootCmd.SetArgs(tc.args)

			require.NoError(t, rootCmd.Execute())
			assert.Contains(t, out.String(), tc.want)
			assert.Contains(t, out.String(), "lms-backend")
		})
	}
}

func TestConfigDumpMissingFile(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"config", "dump", "-c", t.TempDir()})

	assert.Error(t, rootCmd.Execute())
}
