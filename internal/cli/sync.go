package cli

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/feedsync/internal/engine"
)

func (c *Cli) runSync(ctx context.Context) error {
	fmt.Println("=== Synchronization ===")
	fmt.Println()

	if !c.monitor.State().Online() {
		fmt.Println("Offline. Pending actions are kept and will sync when connectivity returns.")
		return nil
	}

	c.engine.OnFailure(printFailure)

	result, err := c.engine.Drain(ctx)
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}
	if err := c.engine.Refresh(ctx); err != nil {
		return fmt.Errorf("feed refresh failed: %w", err)
	}

	fmt.Println("✓ Synchronization completed")
	fmt.Println()
	fmt.Printf("Confirmed: %d action(s)\n", result.Confirmed)
	if result.Retried > 0 {
		fmt.Printf("Retrying:  %d action(s)\n", result.Retried)
	}
	if result.Abandoned > 0 {
		fmt.Printf("Abandoned: %d action(s)\n", result.Abandoned)
	}
	return nil
}

func (c *Cli) runWatch(ctx context.Context) error {
	fmt.Println("Watching for connectivity changes. Press Ctrl+C to stop.")

	c.engine.OnFailure(printFailure)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.monitor.Run(ctx, c.probeInterval)
	})
	g.Go(func() error {
		return c.engine.Run(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (c *Cli) runStatus(ctx context.Context) error {
	fmt.Println("=== Status ===")
	fmt.Println()

	state := c.monitor.State()
	fmt.Printf("Connectivity: %s\n", state.State)

	if c.storage.Available() {
		fmt.Println("Storage:      persistent")
	} else {
		fmt.Println("Storage:      memory-only (local database unavailable)")
	}

	count, err := c.engine.PendingCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pending actions: %w", err)
	}

	fmt.Println()
	if count > 0 {
		fmt.Printf("Pending sync: %d action(s) waiting\n", count)
		fmt.Println("Run 'feedsync sync' to push them to the server.")
	} else {
		fmt.Println("✓ All actions synchronized")
	}
	return nil
}

func printFailure(ev engine.FailureEvent) {
	if ev.Abandoned {
		fmt.Printf("⚠️  %s on %s gave up after retries: %s\n", ev.Kind, ev.TargetID, ev.Reason)
		return
	}
	fmt.Printf("⚠️  %s on %s rejected by server: %s\n", ev.Kind, ev.TargetID, ev.Reason)
}
