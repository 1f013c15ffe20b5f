package feed

import (
	"fmt"
	"log"
	"os"
	"time"

	"ignitefeed.app/internal/config"
	"ignitefeed.app/internal/feed/model"
	"ignitefeed.app/internal/persistence/kv"
	"ignitefeed.app/internal/persistence/snapshot"
	"ignitefeed.app/internal/persistence/state"
	"ignitefeed.app/internal/timefmt"
)

// Controller is the composition root: it owns the feed store and one
// comment store per post, and exposes the read snapshots and the four
// mutation entry points the presentation layer consumes. All calls
// are synchronous; a single session owns a single Controller.
type Controller struct {
	logger   *log.Logger
	store    kv.Store
	bridge   *state.Bridge
	feed     *FeedStore
	comments map[int64]*CommentStore
	now      func() time.Time
}

// New opens the configured sqlite store and builds the controller on
// top of it.
func New(cfg config.Config, logger *log.Logger) (*Controller, error) {
	db, err := kv.OpenSQLite(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	var store kv.Store = db
	if cfg.Storage.Compress {
		store, err = kv.NewCompressed(db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return NewWithStore(cfg, store, logger), nil
}

// NewWithStore builds the controller on an injected key-value store.
// Tests use it with kv.Memory.
func NewWithStore(cfg config.Config, store kv.Store, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(os.Stderr, "[feed] ", log.LstdFlags)
	}
	bridge := state.NewBridge(store, logger)
	c := &Controller{
		logger:   logger,
		store:    store,
		bridge:   bridge,
		comments: make(map[int64]*CommentStore),
		now:      time.Now,
	}
	c.feed = NewFeedStore(bridge, cfg.SeedPost(), c.clock)
	return c
}

// SetClock pins the wall clock for the controller and every store it
// owns. Tests use it to make timestamps and relative strings stable.
func (c *Controller) SetClock(now func() time.Time) {
	c.now = now
	c.bridge.SetClock(now)
}

func (c *Controller) clock() time.Time { return c.now() }

// Posts returns the current feed, newest first.
func (c *Controller) Posts() []model.Post { return c.feed.Posts() }

// Comments returns one post's thread, oldest first.
func (c *Controller) Comments(postID int64) ([]model.Comment, error) {
	cs, err := c.commentStore(postID)
	if err != nil {
		return nil, err
	}
	return cs.Comments(), nil
}

func (c *Controller) CreatePost(rawText string, author model.Author) (model.Post, error) {
	return c.feed.CreatePost(rawText, author)
}

func (c *Controller) AddComment(postID int64, text string) (model.Comment, error) {
	cs, err := c.commentStore(postID)
	if err != nil {
		return model.Comment{}, err
	}
	return cs.Add(text)
}

func (c *Controller) DeleteComment(postID int64, text string) (int, error) {
	cs, err := c.commentStore(postID)
	if err != nil {
		return 0, err
	}
	return cs.DeleteByContent(text), nil
}

func (c *Controller) LikeComment(postID int64, index int) (int, error) {
	cs, err := c.commentStore(postID)
	if err != nil {
		return 0, err
	}
	return cs.Like(index)
}

// FormatPublishedAt renders a post's timestamp for display, relative
// to the controller clock.
func (c *Controller) FormatPublishedAt(p model.Post) timefmt.Stamp {
	return timefmt.Format(p.PublishedAt, c.now())
}

// commentStore lazily builds the per-post store on first touch, which
// is when the stored thread (or its legacy shape) gets loaded.
func (c *Controller) commentStore(postID int64) (*CommentStore, error) {
	if cs, ok := c.comments[postID]; ok {
		return cs, nil
	}
	if _, ok := c.feed.post(postID); !ok {
		return nil, ErrNoSuchPost
	}
	cs := newCommentStore(postID, c.bridge, c.clock)
	c.comments[postID] = cs
	return cs, nil
}

// ExportSnapshot writes the whole state (posts and every thread) to a
// zstd snapshot file.
func (c *Controller) ExportSnapshot(path string) error {
	posts := c.feed.Posts()
	st := snapshot.StateV1{
		Header: snapshot.Header{
			Version: 1,
			SavedAt: c.now().Format(time.RFC3339),
			Posts:   len(posts),
		},
		Comments: make(map[int64][]state.CommentV1),
	}
	for _, p := range posts {
		st.Posts = append(st.Posts, state.PostRecord(p))
		cs, err := c.commentStore(p.ID)
		if err != nil {
			return err
		}
		if comments := cs.Comments(); len(comments) > 0 {
			recs := make([]state.CommentV1, 0, len(comments))
			for _, cm := range comments {
				recs = append(recs, state.CommentRecord(cm))
			}
			st.Comments[p.ID] = recs
		}
	}
	return snapshot.Write(path, st)
}

// ImportSnapshot replaces the in-memory state with the snapshot's and
// persists everything. Unlike regular loads this is an explicit
// restore, so a bad file is reported instead of degraded.
func (c *Controller) ImportSnapshot(path string) error {
	st, err := snapshot.Read(path)
	if err != nil {
		return err
	}
	posts := make([]model.Post, 0, len(st.Posts))
	for _, rec := range st.Posts {
		p, err := rec.Post()
		if err != nil {
			return fmt.Errorf("snapshot post %d: %w", rec.ID, err)
		}
		posts = append(posts, p)
	}

	// Drop every current thread so stale keys cannot shadow the
	// restored state.
	for _, p := range c.feed.Posts() {
		c.bridge.Clear(state.CommentsKey(p.ID))
	}
	c.comments = make(map[int64]*CommentStore)

	c.feed.replace(posts)
	now := c.now()
	for id, recs := range st.Comments {
		comments := make([]model.Comment, 0, len(recs))
		for _, rec := range recs {
			comments = append(comments, rec.Comment(now))
		}
		cs := &CommentStore{postID: id, bridge: c.bridge, now: c.clock}
		cs.replace(comments)
		c.comments[id] = cs
	}
	c.logger.Printf("imported snapshot %s: %d posts", path, len(posts))
	return nil
}

// Close releases the underlying store when it owns resources (the
// sqlite file does, the in-memory fake does not).
func (c *Controller) Close() error {
	type closer interface{ Close() error }
	if cl, ok := c.store.(closer); ok {
		return cl.Close()
	}
	return nil
}
