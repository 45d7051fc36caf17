package main

import (
	"os"

	"github.com/sandpointevents/event-pipeline/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
