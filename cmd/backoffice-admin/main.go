// Package main is the entry point for the Backoffice admin CLI.
// It inspects and maintains the fallback store directly, without going
// through the HTTP API or the upstream storefront.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/mertkaya-dev/backoffice/internal/config"
	"github.com/mertkaya-dev/backoffice/internal/fallback"
	"github.com/mertkaya-dev/backoffice/internal/fallback/postgres"
	"github.com/mertkaya-dev/backoffice/internal/fallback/sqlite"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	switch command {
	case "version":
		fmt.Println("Backoffice Admin CLI")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "help", "-h", "--help":
		printUsage()

	case "list", "show", "clear":
		if err := runStoreCommand(*configPath, command, flag.Arg(1)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runStoreCommand(configPath, command, collection string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg.Fallback)
	if err != nil {
		return fmt.Errorf("open fallback store: %w", err)
	}
	defer store.Close()

	switch command {
	case "list":
		return listCollections(ctx, store)
	case "show":
		if collection == "" {
			return fmt.Errorf("show requires a collection name")
		}
		return showCollection(ctx, store, collection)
	case "clear":
		if collection == "" {
			return fmt.Errorf("clear requires a collection name")
		}
		if err := store.Clear(ctx, collection); err != nil {
			return err
		}
		fmt.Printf("Cleared collection %q\n", collection)
		return nil
	}
	return nil
}

func listCollections(ctx context.Context, store fallback.Store) error {
	names, err := store.Collections(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No collections in the fallback store.")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func showCollection(ctx context.Context, store fallback.Store, name string) error {
	payload, err := store.Load(ctx, name)
	if err != nil {
		return err
	}
	if payload == nil {
		return fmt.Errorf("collection %q does not exist", name)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, payload, "", "  "); err != nil {
		// Not JSON for some reason; dump it raw.
		fmt.Println(string(payload))
		return nil
	}
	fmt.Println(pretty.String())
	return nil
}

func openStore(ctx context.Context, cfg config.FallbackConfig) (fallback.Store, error) {
	logger := zerolog.Nop()
	switch cfg.Driver {
	case "sqlite":
		return sqlite.New(ctx, sqlite.Config{
			Path:            cfg.Path,
			JournalMode:     cfg.JournalMode,
			BusyTimeout:     cfg.BusyTimeout,
			SynchronousMode: cfg.SynchronousMode,
		}, logger)
	case "postgres":
		return postgres.New(ctx, postgres.Config{
			Host:            cfg.Host,
			Port:            cfg.Port,
			User:            cfg.User,
			Password:        cfg.Password,
			Database:        cfg.Database,
			SSLMode:         cfg.SSLMode,
			MaxOpenConns:    cfg.MaxOpenConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		}, logger)
	default:
		return nil, fmt.Errorf("fallback driver %q has no persistent store to administer", cfg.Driver)
	}
}

func printUsage() {
	fmt.Println(`Backoffice Admin CLI

Usage:
  backoffice-admin [-config path] <command> [arguments]

Commands:
  list        List fallback store collections
  show        Print a collection's records as JSON
  clear       Remove a collection from the fallback store
  version     Print version information
  help        Show this help message

Examples:
  backoffice-admin list
  backoffice-admin show users
  backoffice-admin show orders
  backoffice-admin clear user_overlays`)
}
