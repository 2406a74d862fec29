package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/b1tburn3r20/speakup-ingest/internal/cli"
)

func main() {
	// .env carries CONGRESS_API_KEY and DATABASE_DSN in development;
	// absence is fine in environments that set them directly.
	_ = godotenv.Load()

	root := cli.NewRootCommand()
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
