package state

import (
	"time"

	"ignitefeed.app/internal/feed/model"
)

// Versioned wire records. Timestamps travel as RFC 3339 strings so a
// save/load cycle reproduces the same instant at second precision.

type AuthorV1 struct {
	AvatarURL string `json:"avatarUrl"`
	Name      string `json:"name"`
	Role      string `json:"role"`
}

type LineV1 struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

type PostV1 struct {
	ID          int64    `json:"id"`
	Author      AuthorV1 `json:"author"`
	Content     []LineV1 `json:"content"`
	PublishedAt string   `json:"publishedAt"`
}

type CommentV1 struct {
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	LikeCount int    `json:"likeCount"`
}

func PostRecord(p model.Post) PostV1 {
	rec := PostV1{
		ID: p.ID,
		Author: AuthorV1{
			AvatarURL: p.Author.AvatarURL,
			Name:      p.Author.Name,
			Role:      p.Author.Role,
		},
		Content:     make([]LineV1, 0, len(p.Content)),
		PublishedAt: p.PublishedAt.Format(time.RFC3339),
	}
	for _, line := range p.Content {
		rec.Content = append(rec.Content, LineV1{Kind: string(line.Kind), Text: line.Text})
	}
	return rec
}

func (rec PostV1) Post() (model.Post, error) {
	publishedAt, err := time.Parse(time.RFC3339, rec.PublishedAt)
	if err != nil {
		return model.Post{}, err
	}
	p := model.Post{
		ID: rec.ID,
		Author: model.Author{
			AvatarURL: rec.Author.AvatarURL,
			Name:      rec.Author.Name,
			Role:      rec.Author.Role,
		},
		Content:     make([]model.ContentLine, 0, len(rec.Content)),
		PublishedAt: publishedAt,
	}
	for _, line := range rec.Content {
		p.Content = append(p.Content, model.ContentLine{Kind: model.LineKind(line.Kind), Text: line.Text})
	}
	return p, nil
}

func CommentRecord(c model.Comment) CommentV1 {
	return CommentV1{
		Content:   c.Content,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		LikeCount: c.LikeCount,
	}
}

// Comment upgrades the record. An unparseable createdAt falls back to
// now, the same treatment legacy bare-string comments get.
func (rec CommentV1) Comment(now time.Time) model.Comment {
	createdAt, err := time.Parse(time.RFC3339, rec.CreatedAt)
	if err != nil {
		createdAt = now
	}
	likes := rec.LikeCount
	if likes < 0 {
		likes = 0
	}
	return model.Comment{
		Content:   rec.Content,
		CreatedAt: createdAt,
		LikeCount: likes,
	}
}
