package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port     int    `json:"port"`
	Database string `json:"database"`
}

func writeFile(t *testing.T, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	require.NoError(t, err)
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")
	writeFile(t, name, `{
		// comments are allowed
		port: 8000,
		database: "goodreads.db",
	}`)

	config, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, 8000, config.Port)
	require.Equal(t, "goodreads.db", config.Database)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")
	writeFile(t, name, `{ port: 8000, database: "goodreads.db" }`)
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{ port: 9000 }`)

	config, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	// the local file wins where it speaks, the base fills the rest
	require.Equal(t, 9000, config.Port)
	require.Equal(t, "goodreads.db", config.Database)
}

func TestReadConfigLocalOnly(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{ port: 9000 }`)

	config, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, 9000, config.Port)
}

func TestReadConfigMissing(t *testing.T) {
	name := filepath.Join(t.TempDir(), "config.json5")

	_, err := ReadConfig[testConfig](name)
	require.True(t, os.IsNotExist(err))
}

func TestReadRecursively(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0777))
	writeFile(t, filepath.Join(dir, "config.json5"), `{ port: 8000 }`)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	defer os.Chdir(cwd)

	config, err := ReadRecursively[testConfig]("config.json5")
	require.NoError(t, err)
	require.Equal(t, 8000, config.Port)

	_, err = ReadRecursively[testConfig]("does-not-exist.json5")
	require.True(t, os.IsNotExist(err))
}
