package models

import "time"

type Post struct {
	ID           int       `json:"id" db:"id"`
	AuthorID     int       `json:"author_id" db:"author_id"`
	AuthorName   string    `json:"author_name,omitempty" db:"-"`
	Body         string    `json:"body" db:"body"`
	ImageKey     string    `json:"-" db:"image_key"`
	ImageURL     string    `json:"image_url,omitempty" db:"image_url"`
	CommentCount int       `json:"comment_count" db:"-"` // computed per read
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type Comment struct {
	ID         int       `json:"id" db:"id"`
	PostID     int       `json:"post_id" db:"post_id"`
	AuthorID   int       `json:"author_id" db:"author_id"`
	AuthorName string    `json:"author_name,omitempty" db:"-"`
	Body       string    `json:"body" db:"body"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type CreatePostRequest struct {
	Body string `json:"body"`
}

type CreateCommentRequest struct {
	Body string `json:"body"`
}
