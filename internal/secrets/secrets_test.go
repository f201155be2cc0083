// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/get-papers/pkg/types"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  map[string]string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "ncbi-api-key", "  abc123  \n")
				writeFile(t, dir, "ncbi-email", "user@example.com\n")
				return dir
			},
			want: map[string]string{
				"ncbi-api-key": "abc123",
				"ncbi-email":   "user@example.com",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "ncbi-api-key", "valid-key")
				writeFile(t, dir, "ncbi-email", "   \n\t  ")
				return dir
			},
			want: map[string]string{
				"ncbi-api-key": "valid-key",
			},
		},
		{
			name: "ignores unrelated files and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, "openai-api-key", "secret")
				writeFile(t, dir, "ncbi-email", "a@b.org")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
				return dir
			},
			want: map[string]string{
				"ncbi-email": "a@b.org",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t), zap.NewNop().Sugar())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read files regardless of mode")
	}
	dir := t.TempDir()
	writeFile(t, dir, "ncbi-email", "value123")

	badPath := filepath.Join(dir, "ncbi-api-key")
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	core, logs := observer.New(zapcore.WarnLevel)
	got, err := Load(dir, zap.New(core).Sugar())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"ncbi-email": "value123"}, got)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "could not read secret", logs.All()[0].Message)
}

func TestLoadNotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "secrets", "not a dir")

	_, err := Load(filepath.Join(dir, "secrets"), zap.NewNop().Sugar())
	assert.ErrorContains(t, err, "not a directory")
}

func TestApplyPubMed(t *testing.T) {
	s := map[string]string{KeyNCBIAPIKey: "from-file", KeyNCBIEmail: "file@example.com"}

	var cfg types.PubMedConfig
	ApplyPubMed(&cfg, s)
	assert.Equal(t, "from-file", cfg.APIKey)
	assert.Equal(t, "file@example.com", cfg.Email)

	cfg = types.PubMedConfig{APIKey: "explicit"}
	ApplyPubMed(&cfg, s)
	assert.Equal(t, "explicit", cfg.APIKey)
	assert.Equal(t, "file@example.com", cfg.Email)

	cfg = types.PubMedConfig{}
	ApplyPubMed(&cfg, map[string]string{})
	assert.Empty(t, cfg.APIKey)
	assert.Empty(t, cfg.Email)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
