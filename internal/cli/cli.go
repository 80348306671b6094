// Package cli implements the feedsync commands. Every command reads
// from the local cache and submits mutations through the sync engine;
// none of them require the server to be reachable.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/iudanet/feedsync/internal/connectivity"
	"github.com/iudanet/feedsync/internal/engine"
	"github.com/iudanet/feedsync/internal/storage/boltdb"
	"github.com/iudanet/feedsync/internal/view"
)

type Cli struct {
	engine        *engine.Engine
	view          *view.Model
	monitor       *connectivity.Monitor
	storage       *boltdb.Storage
	probeInterval time.Duration
}

func New(
	eng *engine.Engine,
	viewModel *view.Model,
	monitor *connectivity.Monitor,
	store *boltdb.Storage,
	probeInterval time.Duration,
) *Cli {
	return &Cli{
		engine:        eng,
		view:          viewModel,
		monitor:       monitor,
		storage:       store,
		probeInterval: probeInterval,
	}
}

func (c *Cli) Run(ctx context.Context, command string, args []string) {
	switch command {
	case "feed":
		if err := c.runFeed(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "create":
		if err := c.runCreate(ctx, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "edit":
		if err := c.runEdit(ctx, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "delete":
		if err := c.runDelete(ctx, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "like":
		if err := c.runLike(ctx, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "comment":
		if err := c.runComment(ctx, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "sync":
		if err := c.runSync(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "watch":
		if err := c.runWatch(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "status":
		if err := c.runStatus(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		PrintUsage()
		os.Exit(1)
	}
}

func PrintUsage() {
	fmt.Println("feedsync - offline-first social feed client")
	fmt.Println()
	fmt.Println("Usage: feedsync [flags] <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  feed                      Show the cached feed")
	fmt.Println("  create <content>          Create a new post")
	fmt.Println("  edit <post-id> <content>  Edit a post")
	fmt.Println("  delete <post-id>          Delete a post")
	fmt.Println("  like <post-id>            Toggle your like on a post")
	fmt.Println("  comment <post-id> <text>  Comment on a post")
	fmt.Println("  sync                      Drain pending actions and refresh the feed")
	fmt.Println("  watch                     Sync continuously in the background")
	fmt.Println("  status                    Show connectivity and pending actions")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -server <url>  Feed server URL")
	fmt.Println("  -db <path>     Path to local database")
	fmt.Println("  -version       Show version information")
}
