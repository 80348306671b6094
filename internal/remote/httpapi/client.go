package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/iudanet/feedsync/internal/models"
	"github.com/iudanet/feedsync/internal/remote"
	"github.com/iudanet/feedsync/pkg/api"
)

// Client is the HTTP implementation of the remote feed service.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new feed API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

var _ remote.Service = (*Client)(nil)

// Ping checks service reachability. Used as the connectivity probe.
func (c *Client) Ping(ctx context.Context) bool {
	err := c.doRequest(ctx, http.MethodGet, "/api/v1/health", nil, nil)
	return err == nil || remote.Classify(err) == remote.ClassPermanent
}

// FetchFeed returns the authoritative feed snapshot. Transient failures
// are retried with a short Fibonacci backoff; the refresh path has no
// retry bookkeeping of its own, unlike queued actions.
func (c *Client) FetchFeed(ctx context.Context) ([]*models.FeedItem, error) {
	var resp api.FeedResponse
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := c.doRequest(ctx, http.MethodGet, "/api/v1/feed", nil, &resp); err != nil {
			if remote.Classify(err) == remote.ClassTransient {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch feed failed: %w", err)
	}

	items := make([]*models.FeedItem, 0, len(resp.Items))
	for _, wire := range resp.Items {
		items = append(items, toModel(wire))
	}
	return items, nil
}

// CreatePost creates a post and returns the server-assigned item.
func (c *Client) CreatePost(ctx context.Context, content string) (*models.FeedItem, error) {
	var resp api.FeedItem
	req := api.PostRequest{Content: content}
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/posts", req, &resp); err != nil {
		return nil, fmt.Errorf("create post failed: %w", err)
	}
	return toModel(resp), nil
}

// UpdatePost replaces post content and returns the authoritative item.
func (c *Client) UpdatePost(ctx context.Context, postID, content string) (*models.FeedItem, error) {
	var resp api.FeedItem
	req := api.PostRequest{Content: content}
	path := "/api/v1/posts/" + url.PathEscape(postID)
	if err := c.doRequest(ctx, http.MethodPut, path, req, &resp); err != nil {
		return nil, fmt.Errorf("update post failed: %w", err)
	}
	return toModel(resp), nil
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, postID string) error {
	path := "/api/v1/posts/" + url.PathEscape(postID)
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete post failed: %w", err)
	}
	return nil
}

// ToggleLike flips the viewer's like and returns the confirmed state.
func (c *Client) ToggleLike(ctx context.Context, postID string) (*remote.LikeResult, error) {
	var resp api.LikeResponse
	path := "/api/v1/posts/" + url.PathEscape(postID) + "/like"
	if err := c.doRequest(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("toggle like failed: %w", err)
	}
	return &remote.LikeResult{Liked: resp.Liked, LikeCount: resp.LikeCount}, nil
}

// AddComment appends a comment and returns the confirmed record.
func (c *Client) AddComment(ctx context.Context, postID, text string) (*remote.CommentRecord, error) {
	var resp api.CommentResponse
	req := api.CommentRequest{Text: text}
	path := "/api/v1/posts/" + url.PathEscape(postID) + "/comments"
	if err := c.doRequest(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, fmt.Errorf("add comment failed: %w", err)
	}
	return &remote.CommentRecord{
		ID:           resp.ID,
		PostID:       resp.PostID,
		Text:         resp.Text,
		CommentCount: resp.CommentCount,
		CreatedAt:    resp.CreatedAt,
	}, nil
}

// doRequest executes one HTTP request against the feed service.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		serverErr := &remote.Error{StatusCode: resp.StatusCode, Message: string(respBody)}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			serverErr.Message = errResp.Message
		}
		return serverErr
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// toModel converts a wire feed item into the domain model.
func toModel(wire api.FeedItem) *models.FeedItem {
	return &models.FeedItem{
		ID:            wire.ID,
		AuthorID:      wire.AuthorID,
		Content:       wire.Content,
		Likes:         wire.LikeCount,
		Comments:      wire.CommentCount,
		CommentTexts:  wire.CommentTexts,
		LikedByViewer: wire.LikedByViewer,
		Revision:      wire.Revision,
		CreatedAt:     wire.CreatedAt,
	}
}
