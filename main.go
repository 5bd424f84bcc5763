package main

import (
	"github.com/joho/godotenv"

	"github.com/biblec/biblec/cmd"
)

func main() {
	// Best-effort: provider API keys may live in a local .env during development.
	_ = godotenv.Load()

	cmd.Execute()
}
