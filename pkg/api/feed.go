package api

import "time"

// FeedItem is the wire representation of one post in the remote feed.
type FeedItem struct {
	CreatedAt     time.Time `json:"created_at"`
	ID            string    `json:"id"`
	AuthorID      string    `json:"author_id"`
	Content       string    `json:"content"`
	CommentTexts  []string  `json:"comment_texts,omitempty"`
	LikeCount     int       `json:"like_count"`
	CommentCount  int       `json:"comment_count"`
	Revision      int64     `json:"revision"`
	LikedByViewer bool      `json:"liked_by_viewer"`
}

// FeedResponse is the server response to a full feed fetch.
type FeedResponse struct {
	Items []FeedItem `json:"items"`
}

// PostRequest carries the content for creating or updating a post.
type PostRequest struct {
	Content string `json:"content"`
}

// LikeResponse is the server-confirmed like state after a toggle.
type LikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

// CommentRequest carries the text of a new comment.
type CommentRequest struct {
	Text string `json:"text"`
}

// CommentResponse is the server-confirmed comment record.
type CommentResponse struct {
	CreatedAt    time.Time `json:"created_at"`
	ID           string    `json:"id"`
	PostID       string    `json:"post_id"`
	Text         string    `json:"text"`
	CommentCount int       `json:"comment_count"`
}

// ErrorResponse is the generic error body returned by the feed service.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}
