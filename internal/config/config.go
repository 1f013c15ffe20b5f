// Package config loads the engine configuration from a YAML file.
// An empty path yields the built-in defaults, so embedding callers
// need no config file at all.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"ignitefeed.app/internal/feed/model"
)

type Config struct {
	Storage StorageSpec `yaml:"storage"`
	Seed    SeedSpec    `yaml:"seed"`
}

type StorageSpec struct {
	// Path of the sqlite database file backing the key-value store.
	Path string `yaml:"path"`
	// Compress zstd-compresses stored values.
	Compress bool `yaml:"compress"`
}

// SeedSpec is the single post the feed starts with when storage is
// empty. Line kinds are explicit here: seed content is authored data,
// not raw text run through the link classifier.
type SeedSpec struct {
	ID          int64          `yaml:"id"`
	Author      AuthorSpec     `yaml:"author"`
	Lines       []SeedLineSpec `yaml:"lines"`
	PublishedAt string         `yaml:"published_at"`
}

type AuthorSpec struct {
	AvatarURL string `yaml:"avatar_url"`
	Name      string `yaml:"name"`
	Role      string `yaml:"role"`
}

type SeedLineSpec struct {
	Kind string `yaml:"kind"`
	Text string `yaml:"text"`
}

func Load(path string) (Config, error) {
	cfg := defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("feed.yaml: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("feed.yaml: %w", err)
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Storage: StorageSpec{
			Path: "data/feed.db",
		},
		Seed: SeedSpec{
			ID: 1,
			Author: AuthorSpec{
				AvatarURL: "http://github.com/diego3g.png",
				Name:      "Diego Fernandes",
				Role:      "Web Developer",
			},
			Lines: []SeedLineSpec{
				{Kind: "paragraph", Text: "Fala galeraa 👋"},
				{Kind: "paragraph", Text: "Acabei de subir mais um projeto no meu portifa. É um projeto que fiz no NLW Return, evento da Rocketseat. O nome do projeto é DoctorCare 🚀"},
				{Kind: "link", Text: "👉 jane.design/doctorcare"},
			},
			PublishedAt: "2024-10-14T14:30:00-03:00",
		},
	}
}

// Normalize fills zero-valued fields from the defaults so a partial
// config file stays valid.
func (c *Config) Normalize() {
	def := defaults()
	if strings.TrimSpace(c.Storage.Path) == "" {
		c.Storage.Path = def.Storage.Path
	}
	if c.Seed.ID == 0 && len(c.Seed.Lines) == 0 {
		c.Seed = def.Seed
	}
}

func (c *Config) Validate() error {
	if c.Seed.ID < 1 {
		return fmt.Errorf("seed.id must be >= 1, got %d", c.Seed.ID)
	}
	if len(c.Seed.Lines) == 0 {
		return fmt.Errorf("seed.lines must not be empty")
	}
	for i, line := range c.Seed.Lines {
		switch model.LineKind(line.Kind) {
		case model.LineParagraph, model.LineLink:
		default:
			return fmt.Errorf("seed.lines[%d].kind %q: want paragraph or link", i, line.Kind)
		}
		if strings.TrimSpace(line.Text) == "" {
			return fmt.Errorf("seed.lines[%d].text must not be empty", i)
		}
	}
	if _, err := time.Parse(time.RFC3339, c.Seed.PublishedAt); err != nil {
		return fmt.Errorf("seed.published_at: %w", err)
	}
	return nil
}

// SeedPost converts the seed spec into the domain post. Validate must
// have accepted the config first.
func (c Config) SeedPost() model.Post {
	publishedAt, _ := time.Parse(time.RFC3339, c.Seed.PublishedAt)
	p := model.Post{
		ID: c.Seed.ID,
		Author: model.Author{
			AvatarURL: c.Seed.Author.AvatarURL,
			Name:      c.Seed.Author.Name,
			Role:      c.Seed.Author.Role,
		},
		PublishedAt: publishedAt,
	}
	for _, line := range c.Seed.Lines {
		p.Content = append(p.Content, model.ContentLine{Kind: model.LineKind(line.Kind), Text: line.Text})
	}
	return p
}
