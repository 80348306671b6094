package cli

import (
	"context"
	"fmt"
	"strings"
)

func (c *Cli) runCreate(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: feedsync create <content>")
	}
	content := strings.Join(args, " ")

	item, err := c.engine.SubmitCreate(ctx, content)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	fmt.Println("✓ Post created locally")
	fmt.Printf("ID: %s\n", item.ID)
	fmt.Println()
	fmt.Println("It will be published on the next sync.")
	return nil
}

func (c *Cli) runEdit(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: feedsync edit <post-id> <content>")
	}
	postID := args[0]
	content := strings.Join(args[1:], " ")

	item, err := c.engine.SubmitEdit(ctx, postID, content)
	if err != nil {
		return fmt.Errorf("failed to edit post: %w", err)
	}

	fmt.Println("✓ Post updated locally")
	fmt.Printf("ID: %s\n", item.ID)
	return nil
}

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: feedsync delete <post-id>")
	}

	if err := c.engine.SubmitDelete(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	fmt.Println("✓ Post deleted locally")
	return nil
}
