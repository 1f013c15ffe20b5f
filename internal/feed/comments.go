package feed

import (
	"strings"
	"time"

	"ignitefeed.app/internal/feed/model"
	"ignitefeed.app/internal/persistence/state"
)

// CommentStore owns one post's comment thread, append order
// oldest-first. Each store is exclusively owned by its post; every
// mutation persists the full thread under the post's key.
type CommentStore struct {
	postID   int64
	bridge   *state.Bridge
	comments []model.Comment
	now      func() time.Time
}

func newCommentStore(postID int64, bridge *state.Bridge, now func() time.Time) *CommentStore {
	s := &CommentStore{postID: postID, bridge: bridge, now: now}
	if comments, ok := bridge.LoadComments(postID); ok {
		s.comments = comments
	}
	return s
}

// Add appends a comment with createdAt = now and zero likes. The text
// is stored as given; only fully blank input is rejected.
func (s *CommentStore) Add(text string) (model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return model.Comment{}, ErrEmptyText
	}
	c := model.Comment{Content: text, CreatedAt: s.now()}
	s.comments = append(s.comments, c)
	s.persist()
	return c, nil
}

// DeleteByContent removes every comment whose content equals text —
// content is the thread's only identity, so duplicates go together.
// It reports how many were removed.
func (s *CommentStore) DeleteByContent(text string) int {
	kept := s.comments[:0]
	for _, c := range s.comments {
		if c.Content != text {
			kept = append(kept, c)
		}
	}
	removed := len(s.comments) - len(kept)
	s.comments = kept
	if removed > 0 {
		s.persist()
	}
	return removed
}

// Like increments the like count of the comment at index i. Every
// call counts; rapid repeats are not coalesced and there is no upper
// bound.
func (s *CommentStore) Like(i int) (int, error) {
	if i < 0 || i >= len(s.comments) {
		return 0, ErrNoSuchComment
	}
	s.comments[i].LikeCount++
	s.persist()
	return s.comments[i].LikeCount, nil
}

// Comments returns a snapshot of the thread, oldest first.
func (s *CommentStore) Comments() []model.Comment {
	out := make([]model.Comment, len(s.comments))
	copy(out, s.comments)
	return out
}

func (s *CommentStore) Len() int { return len(s.comments) }

func (s *CommentStore) persist() {
	s.bridge.SaveComments(s.postID, s.comments)
}

func (s *CommentStore) replace(comments []model.Comment) {
	s.comments = comments
	s.persist()
}
