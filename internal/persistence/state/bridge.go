// Package state is the persistence bridge between the in-memory feed
// and the durable key-value medium. Loads fail soft: a missing key,
// malformed payload or schema mismatch reports absent and the caller
// substitutes its default. Saves fail soft too: a write error is
// logged and dropped, leaving the in-memory state authoritative for
// the session.
package state

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"ignitefeed.app/internal/feed/model"
	"ignitefeed.app/internal/persistence/kv"
)

// FeedKey holds the whole post list.
const FeedKey = "feed:posts"

// CommentsKey holds one post's comment thread.
func CommentsKey(postID int64) string {
	return fmt.Sprintf("feed:post:%d:comments", postID)
}

type Bridge struct {
	store  kv.Store
	logger *log.Logger
	now    func() time.Time
}

func NewBridge(store kv.Store, logger *log.Logger) *Bridge {
	if logger == nil {
		logger = log.New(os.Stderr, "[state] ", log.LstdFlags)
	}
	return &Bridge{store: store, logger: logger, now: time.Now}
}

// SetClock pins the wall clock used when upgrading legacy comments.
func (b *Bridge) SetClock(now func() time.Time) { b.now = now }

// LoadFeed returns the stored post list, or found=false when the key
// is missing or the payload does not decode.
func (b *Bridge) LoadFeed() ([]model.Post, bool) {
	raw, ok := b.get(FeedKey)
	if !ok {
		return nil, false
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		b.logger.Printf("load %s: malformed json: %v", FeedKey, err)
		return nil, false
	}
	if err := feedSchema.Validate(payload); err != nil {
		b.logger.Printf("load %s: schema mismatch, discarding", FeedKey)
		return nil, false
	}
	var recs []PostV1
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, false
	}
	posts := make([]model.Post, 0, len(recs))
	for _, rec := range recs {
		p, err := rec.Post()
		if err != nil {
			b.logger.Printf("load %s: bad publishedAt %q, discarding", FeedKey, rec.PublishedAt)
			return nil, false
		}
		posts = append(posts, p)
	}
	return posts, true
}

func (b *Bridge) SaveFeed(posts []model.Post) {
	recs := make([]PostV1, 0, len(posts))
	for _, p := range posts {
		recs = append(recs, PostRecord(p))
	}
	b.put(FeedKey, recs)
}

// LoadComments returns the stored thread for one post. The legacy
// shape (a bare array of strings) upgrades each entry to a record
// with createdAt = now; the migration sticks only once re-saved.
func (b *Bridge) LoadComments(postID int64) ([]model.Comment, bool) {
	key := CommentsKey(postID)
	raw, ok := b.get(key)
	if !ok {
		return nil, false
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		b.logger.Printf("load %s: malformed json: %v", key, err)
		return nil, false
	}

	if err := commentsSchema.Validate(payload); err == nil {
		var recs []CommentV1
		if err := json.Unmarshal(raw, &recs); err != nil {
			return nil, false
		}
		now := b.now()
		comments := make([]model.Comment, 0, len(recs))
		for _, rec := range recs {
			comments = append(comments, rec.Comment(now))
		}
		return comments, true
	}

	if err := legacyCommentsSchema.Validate(payload); err == nil {
		var texts []string
		if err := json.Unmarshal(raw, &texts); err != nil {
			return nil, false
		}
		now := b.now()
		comments := make([]model.Comment, 0, len(texts))
		for _, text := range texts {
			comments = append(comments, model.Comment{Content: text, CreatedAt: now})
		}
		b.logger.Printf("load %s: upgraded %d legacy comments", key, len(texts))
		return comments, true
	}

	b.logger.Printf("load %s: schema mismatch, discarding", key)
	return nil, false
}

func (b *Bridge) SaveComments(postID int64, comments []model.Comment) {
	recs := make([]CommentV1, 0, len(comments))
	for _, c := range comments {
		recs = append(recs, CommentRecord(c))
	}
	b.put(CommentsKey(postID), recs)
}

// Clear removes one key. Like saves, failures are logged and dropped.
func (b *Bridge) Clear(key string) {
	if err := b.store.Delete(key); err != nil {
		b.logger.Printf("clear %s: %v", key, err)
	}
}

func (b *Bridge) get(key string) ([]byte, bool) {
	raw, found, err := b.store.Get(key)
	if err != nil {
		b.logger.Printf("load %s: %v", key, err)
		return nil, false
	}
	return raw, found
}

func (b *Bridge) put(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		b.logger.Printf("save %s: encode: %v", key, err)
		return
	}
	if err := b.store.Set(key, raw); err != nil {
		b.logger.Printf("save %s: %v", key, err)
	}
}
