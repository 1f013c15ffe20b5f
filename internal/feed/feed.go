// Package feed owns the in-memory feed state: the ordered post list,
// one comment store per post, and the controller that wires them to
// storage and to the presentation layer.
package feed

import (
	"errors"
	"strings"
	"time"

	"ignitefeed.app/internal/feed/model"
	"ignitefeed.app/internal/persistence/state"
)

var (
	// ErrEmptyText rejects empty or whitespace-only input to post and
	// comment creation. The UI treats it as a disabled submit, never
	// as a surfaced failure.
	ErrEmptyText = errors.New("empty text")

	ErrNoSuchPost    = errors.New("no such post")
	ErrNoSuchComment = errors.New("no such comment")
)

// FeedStore owns the ordered post list, newest first. Posts are only
// ever prepended; ordering is insertion order, never re-sorted by
// timestamp.
type FeedStore struct {
	bridge *state.Bridge
	posts  []model.Post
	nextID int64
	now    func() time.Time
}

// NewFeedStore loads the feed from storage; when absent it starts
// from the seed post and persists it so the next load reproduces the
// same feed. Post ids resume strictly after the largest loaded id, so
// they never collide or get reused regardless of wall-clock skew.
func NewFeedStore(bridge *state.Bridge, seed model.Post, now func() time.Time) *FeedStore {
	if now == nil {
		now = time.Now
	}
	s := &FeedStore{bridge: bridge, now: now}
	if posts, ok := bridge.LoadFeed(); ok {
		s.posts = posts
	} else {
		s.posts = []model.Post{seed}
		s.persist()
	}
	s.nextID = 1
	for _, p := range s.posts {
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	return s
}

// CreatePost splits rawText into trimmed non-empty lines, classifies
// each as link or paragraph, and prepends the new post to the feed.
func (s *FeedStore) CreatePost(rawText string, author model.Author) (model.Post, error) {
	content := SplitContent(rawText)
	if len(content) == 0 {
		return model.Post{}, ErrEmptyText
	}
	p := model.Post{
		ID:          s.nextID,
		Author:      author,
		Content:     content,
		PublishedAt: s.now(),
	}
	s.nextID++
	s.posts = append([]model.Post{p}, s.posts...)
	s.persist()
	return p, nil
}

// Posts returns a snapshot of the feed, newest first.
func (s *FeedStore) Posts() []model.Post {
	out := make([]model.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

func (s *FeedStore) Len() int { return len(s.posts) }

func (s *FeedStore) post(id int64) (model.Post, bool) {
	for _, p := range s.posts {
		if p.ID == id {
			return p, true
		}
	}
	return model.Post{}, false
}

func (s *FeedStore) persist() {
	s.bridge.SaveFeed(s.posts)
}

// replace swaps in a restored feed and re-seats the id counter.
func (s *FeedStore) replace(posts []model.Post) {
	s.posts = posts
	s.nextID = 1
	for _, p := range s.posts {
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	s.persist()
}

// SplitContent turns raw authored text into display lines: blank
// lines drop out, each kept line is trimmed, and a line is a link iff
// it starts with http://, https:// or www. (case-insensitive).
func SplitContent(rawText string) []model.ContentLine {
	var out []model.ContentLine
	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		kind := model.LineParagraph
		if isLink(line) {
			kind = model.LineLink
		}
		out = append(out, model.ContentLine{Kind: kind, Text: line})
	}
	return out
}

func isLink(line string) bool {
	l := strings.ToLower(line)
	return strings.HasPrefix(l, "http://") ||
		strings.HasPrefix(l, "https://") ||
		strings.HasPrefix(l, "www.")
}
