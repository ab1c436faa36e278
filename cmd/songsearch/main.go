package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	// Load .env file for local development
	_ = godotenv.Load()

	app := &cli.Command{
		Name:  "songsearch",
		Usage: "Search song metadata across iTunes, Spotify and Genius",
		Commands: []*cli.Command{
			serveCommand(),
			searchCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		slog.Error("Application error", "error", err)
		os.Exit(1)
	}
}
