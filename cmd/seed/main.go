// Package main provides a CLI tool for seeding teams and running one-off
// roster commands against the configured storage backend.
package main

import (
	"context"
	"os"

	"roster/internal/infrastructure/storage"
)

func main() {
	if err := run(context.Background(), storage.Open, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
