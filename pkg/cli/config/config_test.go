package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/argus/pkg/cli/config"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "workspaces.json", `{
		"workspaces": [
			{"name": "acme-prod", "client_id": "id-1", "client_secret": "sec-1"},
			{"name": "acme-eu", "client_id": "id-2", "client_secret": "sec-2"}
		]
	}`)

	cfg, err := config.Load(path)
	gt.NoError(t, err).Required()
	gt.Array(t, cfg.Workspaces).Length(2)
	gt.Value(t, cfg.Names()).Equal([]string{"acme-prod", "acme-eu"})
	gt.Value(t, cfg.Workspaces[0].ClientID).Equal("id-1")
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "workspaces.toml", `
[[workspaces]]
name = "acme-prod"
client_id = "id-1"
client_secret = "sec-1"
`)

	cfg, err := config.Load(path)
	gt.NoError(t, err).Required()
	gt.Array(t, cfg.Workspaces).Length(1)
	gt.Value(t, cfg.Workspaces[0].Name.String()).Equal("acme-prod")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.json"))
	gt.Bool(t, errors.Is(err, config.ErrConfigNotFound)).True()
}

func TestLoadInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not an object", body: `["just", "a", "list"]`},
		{name: "missing workspaces key", body: `{"other": []}`},
		{name: "not JSON at all", body: `hello`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "bad.json", tt.body)
			_, err := config.Load(path)
			gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).True()
		})
	}
}

func TestLoadValidation(t *testing.T) {
	t.Run("missing client_secret", func(t *testing.T) {
		path := writeConfig(t, "bad.json", `{"workspaces": [{"name": "a", "client_id": "id"}]}`)
		_, err := config.Load(path)
		gt.Error(t, err)
	})

	t.Run("empty name", func(t *testing.T) {
		path := writeConfig(t, "bad.json", `{"workspaces": [{"name": "", "client_id": "id", "client_secret": "s"}]}`)
		_, err := config.Load(path)
		gt.Error(t, err)
	})

	t.Run("duplicate workspace name", func(t *testing.T) {
		path := writeConfig(t, "bad.json", `{"workspaces": [
			{"name": "a", "client_id": "id-1", "client_secret": "s1"},
			{"name": "a", "client_id": "id-2", "client_secret": "s2"}
		]}`)
		_, err := config.Load(path)
		gt.Bool(t, errors.Is(err, config.ErrDuplicateWorkspace)).True()
	})

	t.Run("empty workspace list is allowed", func(t *testing.T) {
		path := writeConfig(t, "empty.json", `{"workspaces": []}`)
		cfg, err := config.Load(path)
		gt.NoError(t, err).Required()
		gt.Array(t, cfg.Workspaces).Length(0)
	})
}
