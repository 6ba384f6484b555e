package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDefaults(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())

	require.NoError(t, Init())

	assert.Equal(t, "getting-started", GetStart())
	assert.Equal(t, "dark", GetTheme())
	assert.Equal(t, 64, GetCacheSize())
	assert.Equal(t, 10*time.Second, GetHTTPTimeout())
	assert.Empty(t, GetFiles())
	assert.Equal(t, "getting-started", C.Start)
}

func TestInitReadsFileAndEnv(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	t.Chdir(dir)

	yaml := "start: intro\nfiles:\n  - intro.md\n  - setup.md\ntheme: light\ncache_size: 0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docmd.yaml"), []byte(yaml), 0o644))
	t.Setenv("DOCMD_NAV_WIDTH", "40")

	require.NoError(t, Init())

	assert.Equal(t, "intro", GetStart())
	assert.Equal(t, []string{"intro.md", "setup.md"}, GetFiles())
	assert.Equal(t, "light", GetTheme())
	assert.Equal(t, 40, GetNavWidth())
	assert.Equal(t, 1, GetCacheSize())
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "docs"), expandTilde("~/docs"))
	assert.Equal(t, "/srv/docs", expandTilde("/srv/docs"))
	assert.Equal(t, "", expandTilde(""))
}

func TestSetters(t *testing.T) {
	viper.Reset()
	SetTheme("light")
	SetPath("https://docs.example.com/content")

	assert.Equal(t, "light", GetTheme())
	assert.Equal(t, "https://docs.example.com/content", GetPath())
	assert.Equal(t, "light", C.Theme)
}
