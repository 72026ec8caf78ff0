package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/Leafra-ai/LeafraSDK/internal/adapters/driving/cli"
)

func main() {
	// A local .env can hold API keys during development; missing is fine.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
