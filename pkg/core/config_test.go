package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/autosave/pkg/core"
)

func TestParsePatterns(t *testing.T) {
	tests := []struct {
		raw      string
		expected []string
	}{
		{"", nil},
		{",", nil},
		{".cs", []string{".cs"}},
		{".cs,.txt;.md:.log", []string{".cs", ".txt", ".md", ".log"}},
		{".cs,,.txt", []string{".cs", ".txt"}},
		{" .cs", []string{" .cs"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, core.ParsePatterns(tt.raw))
		})
	}
}

func TestConfig_Snapshot(t *testing.T) {
	policy := core.Policy{
		IgnoredFileTypes:    ".a;.b",
		UseRegex:            false,
		SaveOnAppDeactivate: true,
		TimeDelaySeconds:    -3,
	}
	cfg := policy.Compile()

	assert.Equal(t, []string{".a", ".b"}, cfg.Patterns())
	assert.False(t, cfg.UseRegex())
	assert.True(t, cfg.SaveOnAppDeactivate())
	assert.Equal(t, -3, cfg.TimeDelaySeconds())
	assert.Equal(t, ".a,.b", cfg.Policy().IgnoredFileTypes)

	// Mutating the returned slice must not leak into the snapshot.
	patterns := cfg.Patterns()
	patterns[0] = "changed"
	assert.Equal(t, []string{".a", ".b"}, cfg.Patterns())

	assert.True(t, cfg.Excludes("x.b"))
	assert.False(t, cfg.Excludes("x.c"))
}

func TestConfig_ZeroValue(t *testing.T) {
	var cfg core.Config
	assert.Empty(t, cfg.Patterns())
	assert.False(t, cfg.SaveOnAppDeactivate())
	assert.False(t, cfg.Excludes("anything"))
}

func TestNewConfig_SkipsEmptyPatterns(t *testing.T) {
	cfg := core.NewConfig([]string{"", ".tmp", ""}, false, false, 0)
	assert.Equal(t, []string{".tmp"}, cfg.Patterns())
	assert.False(t, cfg.Excludes("main.go"))
}
