package state

import "github.com/santhosh-tekuri/jsonschema/v5"

// Stored payloads are validated before decoding: a payload that fails
// its schema is treated as absent rather than half-decoded. Comments
// additionally accept the legacy shape (a bare array of strings) and
// are upgraded at load time.

var feedSchema = jsonschema.MustCompileString("feed_posts.schema.json", `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "author", "content", "publishedAt"],
		"properties": {
			"id": {"type": "integer"},
			"author": {
				"type": "object",
				"required": ["avatarUrl", "name", "role"],
				"properties": {
					"avatarUrl": {"type": "string"},
					"name": {"type": "string"},
					"role": {"type": "string"}
				}
			},
			"content": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["kind", "text"],
					"properties": {
						"kind": {"enum": ["paragraph", "link"]},
						"text": {"type": "string"}
					}
				}
			},
			"publishedAt": {"type": "string"}
		}
	}
}`)

var commentsSchema = jsonschema.MustCompileString("comments.schema.json", `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["content"],
		"properties": {
			"content": {"type": "string"},
			"createdAt": {"type": "string"},
			"likeCount": {"type": "integer", "minimum": 0}
		}
	}
}`)

var legacyCommentsSchema = jsonschema.MustCompileString("comments_legacy.schema.json", `{
	"type": "array",
	"items": {"type": "string"}
}`)
