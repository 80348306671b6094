package remote

import (
	"context"
	"time"

	"github.com/iudanet/feedsync/internal/models"
)

//go:generate moq -out service_mock.go . Service

// Service is the remote feed service the engine reconciles against.
// Implementations must return errors that Classify can split into
// transient and permanent failures.
type Service interface {
	// FetchFeed returns the authoritative feed snapshot.
	FetchFeed(ctx context.Context) ([]*models.FeedItem, error)

	// CreatePost creates a post and returns it with the server-assigned
	// id and revision.
	CreatePost(ctx context.Context, content string) (*models.FeedItem, error)

	// UpdatePost replaces the content of a post and returns the
	// authoritative item.
	UpdatePost(ctx context.Context, postID, content string) (*models.FeedItem, error)

	// DeletePost removes a post.
	DeletePost(ctx context.Context, postID string) error

	// ToggleLike flips the viewer's like and returns the confirmed state.
	ToggleLike(ctx context.Context, postID string) (*LikeResult, error)

	// AddComment appends a comment and returns the confirmed record.
	AddComment(ctx context.Context, postID, text string) (*CommentRecord, error)
}

// LikeResult is the server-confirmed like state after a toggle.
type LikeResult struct {
	Liked     bool
	LikeCount int
}

// CommentRecord is the server-confirmed comment.
type CommentRecord struct {
	CreatedAt    time.Time
	ID           string
	PostID       string
	Text         string
	CommentCount int
}
