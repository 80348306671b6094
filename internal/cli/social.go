package cli

import (
	"context"
	"fmt"
	"strings"
)

func (c *Cli) runLike(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: feedsync like <post-id>")
	}

	item, err := c.engine.SubmitLike(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to toggle like: %w", err)
	}

	if item.LikedByViewer {
		fmt.Printf("✓ Liked (%d likes)\n", item.Likes)
	} else {
		fmt.Printf("✓ Unliked (%d likes)\n", item.Likes)
	}
	return nil
}

func (c *Cli) runComment(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: feedsync comment <post-id> <text>")
	}
	postID := args[0]
	text := strings.Join(args[1:], " ")

	item, err := c.engine.SubmitComment(ctx, postID, text)
	if err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}

	fmt.Printf("✓ Comment added (%d comments)\n", item.Comments)
	return nil
}
