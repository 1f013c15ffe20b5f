package model

import "time"

// Author is fixed at post creation and never changes afterwards.
type Author struct {
	AvatarURL string
	Name      string
	Role      string
}

type LineKind string

const (
	LineParagraph LineKind = "paragraph"
	LineLink      LineKind = "link"
)

// ContentLine is one display line of a post body. Order is authoring order.
type ContentLine struct {
	Kind LineKind
	Text string
}

type Post struct {
	ID          int64
	Author      Author
	Content     []ContentLine
	PublishedAt time.Time
}

// Comment belongs to exactly one post. Content is its only identity:
// deletion matches on content equality.
type Comment struct {
	Content   string
	CreatedAt time.Time
	LikeCount int
}
