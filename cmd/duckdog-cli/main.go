package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"

	"github.com/peterkuimelis/duckdog/internal/effect"
	"github.com/peterkuimelis/duckdog/internal/game"
	"github.com/peterkuimelis/duckdog/internal/log"
	ddnet "github.com/peterkuimelis/duckdog/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "host":
		err = runHost(ctx, os.Args[2:])
	case "join":
		err = runJoin(ctx, os.Args[2:])
	case "local":
		err = runLocal(ctx, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  duckdog host [--deck N] [--port P] [--decks FILE] [--speed X]")
	fmt.Println("  duckdog join [--deck N] [--addr ADDR]")
	fmt.Println("  duckdog local [--deck N] [--ai-deck N] [--decks FILE] [--speed X] [--auto]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  host    Start a game server and play as Player 1")
	fmt.Println("  join    Connect to a game server and play as Player 2")
	fmt.Println("  local   Play against the AI in this terminal")
}

// viewsFor paces animations at the given speed; 0 resolves instantly.
func viewsFor(speed float64) game.ViewFactory {
	if speed <= 0 {
		return nil
	}
	effect.DefaultSpeed.Set(speed)
	return game.TimedViews(effect.DefaultSpeed, nil)
}

func runHost(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	deck := fs.Int("deck", 1, "deck number to use (from decks.yaml)")
	port := fs.String("port", "9000", "TCP port to listen on")
	decksFile := fs.String("decks", "decks.yaml", "path to decks file")
	speed := fs.Float64("speed", 0, "animation speed multiplier (0 = instant)")
	fs.Parse(args)

	srv := &ddnet.Server{
		DeckFile: *decksFile,
		Port:     *port,
		HostDeck: *deck,
		Views:    viewsFor(*speed),
	}
	return srv.Run(ctx)
}

func runJoin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	deck := fs.Int("deck", 2, "deck number to use (from decks.yaml)")
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	fs.Parse(args)

	return ddnet.Connect(ctx, *addr, *deck)
}

func runLocal(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("local", flag.ExitOnError)
	deck := fs.Int("deck", 1, "your deck number (from decks.yaml)")
	aiDeck := fs.Int("ai-deck", 2, "the AI's deck number")
	decksFile := fs.String("decks", "decks.yaml", "path to decks file")
	speed := fs.Float64("speed", 0, "animation speed multiplier (0 = instant)")
	auto := fs.Bool("auto", false, "let the AI play both sides")
	fs.Parse(args)

	yourName, yourCards, err := game.DeckByNumber(*decksFile, *deck)
	if err != nil {
		return fmt.Errorf("load deck: %w", err)
	}
	aiName, aiCards, err := game.DeckByNumber(*decksFile, *aiDeck)
	if err != nil {
		return fmt.Errorf("load AI deck: %w", err)
	}
	fmt.Printf("%s vs %s\n", yourName, aiName)

	cfg := game.MatchConfig{
		Deck0: yourCards,
		Deck1: aiCards,
		Views: viewsFor(*speed),
	}

	if *auto {
		cfg.Logger = log.NewTextLogger(os.Stdout)
		match := game.NewMatch(cfg, game.AIController{}, game.AIController{})
		if _, err := match.Run(ctx); err != nil {
			return err
		}
		fmt.Println(match.State.Result)
		return nil
	}

	// The REPL prints events itself, so the match keeps them in memory.
	cfg.Logger = log.NewMemoryLogger()
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	player := ddnet.NewNetworkController(serverConn, 0)
	match := game.NewMatch(cfg, player, game.AIController{})

	errCh := make(chan error, 2)
	go func() {
		errCh <- ddnet.NewClient(clientConn, "P1", nil, nil).RunREPL(ctx)
	}()
	go func() {
		winner, err := match.Run(ctx)
		if err != nil {
			errCh <- err
			return
		}
		errCh <- player.SendGameOver(winner, match.State.Result)
	}()

	// The REPL returns after printing game_over.
	if err := <-errCh; err != nil && err != ddnet.ErrQuit {
		return err
	}
	return nil
}
