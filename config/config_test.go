package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadMissingFileGivesZeroConfig(t *testing.T) {
	cfg, err := Load(t.TempDir())

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(&Config{}, cfg)
}

func TestLoadReadsYml(t *testing.T) {
	dir := t.TempDir()
	content := "outputDir: /srv/songs\nserveAddr: \":9090\"\nallowedOrigins:\n  - https://songs.example.com\nmetadataEndpoint: http://localhost:8000\nmetadataTable: songs\n"
	if err := os.WriteFile(filepath.Join(dir, "performous-tools.yml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal("/srv/songs", cfg.OutputDir)
	assert.Equal(":9090", cfg.ServeAddr)
	assert.Equal([]string{"https://songs.example.com"}, cfg.AllowedOrigins)
	assert.Equal("http://localhost:8000", cfg.MetadataEndpoint)
	assert.Equal("songs", cfg.MetadataTable)
}

func TestLoadFallsBackToYamlExtension(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "performous-tools.yaml"), []byte("outputDir: /tmp/x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal("/tmp/x", cfg.OutputDir)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "performous-tools.yml"), []byte("{{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	assert.Error(t, err)
}
