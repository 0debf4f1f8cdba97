package models

import "time"

// Post is a piece of content authored by a user. Posts are immutable once
// created, so UpdatedAt always equals CreatedAt.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreatePostRequest is the JSON body for POST /posts.
type CreatePostRequest struct {
	Content string `json:"content"`
}

// CreatePostResponse is returned by POST /posts.
type CreatePostResponse struct {
	Message string `json:"message"`
	Post    *Post  `json:"post"`
}
