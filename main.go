package main

import (
	"log"

	"github.com/jesb1n/immich/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
