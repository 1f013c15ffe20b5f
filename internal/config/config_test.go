package config

import (
	"os"
	"path/filepath"
	"testing"

	"ignitefeed.app/internal/feed/model"
)

func TestLoad_EmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Path != "data/feed.db" {
		t.Fatalf("storage.path=%q", cfg.Storage.Path)
	}

	seed := cfg.SeedPost()
	if seed.ID != 1 || seed.Author.Name != "Diego Fernandes" || seed.Author.Role != "Web Developer" {
		t.Fatalf("seed: %+v", seed)
	}
	if len(seed.Content) != 3 {
		t.Fatalf("seed lines=%d want 3", len(seed.Content))
	}
	kinds := []model.LineKind{seed.Content[0].Kind, seed.Content[1].Kind, seed.Content[2].Kind}
	want := []model.LineKind{model.LineParagraph, model.LineParagraph, model.LineLink}
	for i := range kinds {
		if kinds[i] != want[i] {
			t.Fatalf("seed line %d kind=%s want %s", i, kinds[i], want[i])
		}
	}
	if seed.PublishedAt.IsZero() {
		t.Fatalf("seed publishedAt is zero")
	}
}

func TestLoad_FileOverridesAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.yaml")
	body := `
storage:
  path: /tmp/other/feed.db
  compress: true
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Path != "/tmp/other/feed.db" || !cfg.Storage.Compress {
		t.Fatalf("storage: %+v", cfg.Storage)
	}
	// Seed untouched by the file falls back to the default.
	if cfg.Seed.ID != 1 || len(cfg.Seed.Lines) != 3 {
		t.Fatalf("seed not defaulted: %+v", cfg.Seed)
	}
}

func TestValidate_RejectsBadSeed(t *testing.T) {
	write := func(body string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "feed.yaml")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		return path
	}

	cases := []string{
		// unknown line kind
		`
seed:
  id: 1
  lines:
    - {kind: banner, text: oi}
  published_at: "2024-10-14T14:30:00Z"
`,
		// blank line text
		`
seed:
  id: 1
  lines:
    - {kind: paragraph, text: "   "}
  published_at: "2024-10-14T14:30:00Z"
`,
		// unparseable timestamp
		`
seed:
  id: 1
  lines:
    - {kind: paragraph, text: oi}
  published_at: "14/10/2024"
`,
	}
	for i, body := range cases {
		if _, err := Load(write(body)); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
