package cli

import (
	"context"
	"os"
)

func (c *Cli) runFeed(ctx context.Context) error {
	return c.view.Render(ctx, os.Stdout)
}
