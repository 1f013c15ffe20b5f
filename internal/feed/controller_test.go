package feed

import (
	"io"
	"log"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"ignitefeed.app/internal/config"
	"ignitefeed.app/internal/feed/model"
	"ignitefeed.app/internal/persistence/kv"
)

func newTestController(t *testing.T, store kv.Store) *Controller {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	c := NewWithStore(cfg, store, log.New(io.Discard, "", 0))
	c.SetClock(fixedClock(time.Date(2024, 10, 15, 9, 0, 0, 0, time.UTC)))
	return c
}

func TestController_DefaultSeedAndCreatePost(t *testing.T) {
	c := newTestController(t, kv.NewMemory())

	posts := c.Posts()
	if len(posts) != 1 || posts[0].ID != 1 || posts[0].Author.Name != "Diego Fernandes" {
		t.Fatalf("seed feed: %+v", posts)
	}

	if _, err := c.CreatePost("Check this\nhttps://example.com", testAuthor); err != nil {
		t.Fatalf("create: %v", err)
	}
	posts = c.Posts()
	if len(posts) != 2 {
		t.Fatalf("feed len=%d want 2", len(posts))
	}
	want := []model.ContentLine{
		{Kind: model.LineParagraph, Text: "Check this"},
		{Kind: model.LineLink, Text: "https://example.com"},
	}
	if !reflect.DeepEqual(posts[0].Content, want) {
		t.Fatalf("content=%+v want %+v", posts[0].Content, want)
	}
	if posts[1].ID != 1 {
		t.Fatalf("seed pushed out of place: %+v", posts[1])
	}
}

func TestController_CommentLifecycle(t *testing.T) {
	c := newTestController(t, kv.NewMemory())

	if _, err := c.AddComment(99, "oi"); err != ErrNoSuchPost {
		t.Fatalf("unknown post err=%v want ErrNoSuchPost", err)
	}

	if _, err := c.AddComment(1, "Muito bom!"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := c.AddComment(1, "Muito bom!"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if n, err := c.LikeComment(1, 0); err != nil || n != 1 {
		t.Fatalf("like: n=%d err=%v", n, err)
	}

	removed, err := c.DeleteComment(1, "Muito bom!")
	if err != nil || removed != 2 {
		t.Fatalf("delete: removed=%d err=%v", removed, err)
	}
	comments, err := c.Comments(1)
	if err != nil || len(comments) != 0 {
		t.Fatalf("thread after delete: %+v err=%v", comments, err)
	}
}

// Reloading over the same medium reproduces posts and threads
// byte-for-byte (timestamps round-trip at second precision).
func TestController_ReloadReproducesState(t *testing.T) {
	store := kv.NewMemory()
	c := newTestController(t, store)

	if _, err := c.CreatePost("novo post\nwww.example.com", testAuthor); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := c.AddComment(2, "primeiro!"); err != nil {
		t.Fatalf("comment: %v", err)
	}
	if _, err := c.LikeComment(2, 0); err != nil {
		t.Fatalf("like: %v", err)
	}

	c2 := newTestController(t, store)
	if !reflect.DeepEqual(c2.Posts(), c.Posts()) {
		t.Fatalf("posts mismatch after reload")
	}
	want, _ := c.Comments(2)
	got, err := c2.Comments(2)
	if err != nil || !reflect.DeepEqual(got, want) {
		t.Fatalf("comments mismatch after reload: %+v vs %+v", got, want)
	}
}

func TestController_FormatPublishedAt(t *testing.T) {
	c := newTestController(t, kv.NewMemory())
	c.SetClock(fixedClock(time.Date(2024, 10, 14, 15, 30, 0, 0, time.UTC)))

	p := model.Post{PublishedAt: time.Date(2024, 10, 14, 14, 30, 0, 0, time.UTC)}
	stamp := c.FormatPublishedAt(p)
	if stamp.Absolute != "14 de out às 14:30h" {
		t.Fatalf("absolute=%q", stamp.Absolute)
	}
	if stamp.Relative != "cerca de 1 hora atrás" {
		t.Fatalf("relative=%q", stamp.Relative)
	}
}

func TestController_SnapshotRoundTrip(t *testing.T) {
	store := kv.NewMemory()
	c := newTestController(t, store)

	if _, err := c.CreatePost("para exportar", testAuthor); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := c.AddComment(2, "leva junto"); err != nil {
		t.Fatalf("comment: %v", err)
	}

	path := filepath.Join(t.TempDir(), "feed.snap.zst")
	if err := c.ExportSnapshot(path); err != nil {
		t.Fatalf("export: %v", err)
	}

	wantPosts := c.Posts()
	wantComments, _ := c.Comments(2)

	// Diverge, then restore.
	if _, err := c.CreatePost("depois do snapshot", testAuthor); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := c.DeleteComment(2, "leva junto"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if err := c.ImportSnapshot(path); err != nil {
		t.Fatalf("import: %v", err)
	}
	if !reflect.DeepEqual(c.Posts(), wantPosts) {
		t.Fatalf("posts after import:\n got %+v\nwant %+v", c.Posts(), wantPosts)
	}
	got, err := c.Comments(2)
	if err != nil || !reflect.DeepEqual(got, wantComments) {
		t.Fatalf("comments after import: %+v err=%v", got, err)
	}

	// The restore is persisted: a fresh controller sees the same state.
	c2 := newTestController(t, store)
	if !reflect.DeepEqual(c2.Posts(), wantPosts) {
		t.Fatalf("posts not persisted by import")
	}
}

func TestController_SQLiteEndToEnd(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.Storage.Path = filepath.Join(t.TempDir(), "feed.db")
	cfg.Storage.Compress = true

	c, err := New(cfg, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	// Whole-second clock so reloaded timestamps compare equal.
	c.SetClock(fixedClock(time.Date(2024, 10, 15, 9, 0, 0, 0, time.UTC)))
	if _, err := c.CreatePost("durável", testAuthor); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := c.AddComment(2, "sobrevive ao restart"); err != nil {
		t.Fatalf("comment: %v", err)
	}
	wantPosts := c.Posts()
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	c2, err := New(cfg, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer c2.Close()
	if !reflect.DeepEqual(c2.Posts(), wantPosts) {
		t.Fatalf("posts after restart:\n got %+v\nwant %+v", c2.Posts(), wantPosts)
	}
	comments, err := c2.Comments(2)
	if err != nil || len(comments) != 1 || comments[0].Content != "sobrevive ao restart" {
		t.Fatalf("comments after restart: %+v err=%v", comments, err)
	}
}
