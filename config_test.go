package aht20

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	tests := []struct {
		name     string
		given    Config
		expected Config
	}{
		{"empty", Config{}, Config{Bus: "1", Address: 0x38}},
		{"bus only", Config{Bus: "4"}, Config{Bus: "4", Address: 0x38}},
		{"address only", Config{Address: 0x39}, Config{Bus: "1", Address: 0x39}},
		{"full", Config{Bus: "0", Address: 0x39}, Config{Bus: "0", Address: 0x39}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.given.withDefaults())
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aht20.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bus: \"4\"\naddress: 0x38\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Config{Bus: "4", Address: 0x38}, cfg)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
