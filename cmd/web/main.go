package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"maps"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/peterkuimelis/duckdog/internal/game"
	"github.com/peterkuimelis/duckdog/internal/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("web", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "HTTP listen address")
	artDir := fs.String("art", "./card_art", "path to card art directory")
	decksFile := fs.String("decks", "decks.yaml", "path to decks YAML file")
	mappingFile := fs.String("mapping", "card_art_mapping.json", "path to card art mapping JSON")
	fs.Parse(args)

	// A deck naming an unknown card would only fail once someone picks it.
	decks, err := game.ParseDeckFile(*decksFile)
	if err != nil {
		return fmt.Errorf("decks: %w", err)
	}
	names := slices.Sorted(maps.Keys(decks))
	log.Printf("loaded %d decks from %s: %v", len(decks), *decksFile, names)

	srv, err := web.NewServer(*artDir, *decksFile, *mappingFile)
	if err != nil {
		return err
	}

	log.Printf("duckdog web UI listening on %s", *addr)
	if err := srv.ListenAndServe(ctx, *addr); err != nil {
		return err
	}
	log.Printf("duckdog web UI stopped")
	return nil
}
