package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/duckdog/internal/effect"
	"github.com/peterkuimelis/duckdog/internal/game"
	ddmcp "github.com/peterkuimelis/duckdog/internal/mcp"
)

func main() {
	decks := flag.String("decks", "decks.yaml", "path to decks YAML file")
	port := flag.String("port", "9999", "TCP port for a human opponent")
	speed := flag.Float64("speed", 0, "animation speed multiplier for human opponents (0 = instant)")
	flag.Parse()

	ddmcp.SetDecksFile(*decks)
	ddmcp.SetPort(*port)
	if *speed > 0 {
		effect.DefaultSpeed.Set(*speed)
		ddmcp.SetViews(game.TimedViews(effect.DefaultSpeed, nil))
	}

	s := server.NewMCPServer("duckdog", "1.0.0")
	ddmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
