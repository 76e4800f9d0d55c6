package main

import (
	"github.com/chanops/stationctl/internal/app"
	"github.com/joho/godotenv"
)

// version is set by goreleaser via ldflags.
var version = "dev"

func main() {
	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()

	app.SetVersion(version)
	app.Execute()
}
