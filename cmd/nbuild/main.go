package main

import (
	"github.com/ozacod/nbuild/internal/app/cli/root"
)

func main() {
	rootCmd := root.GetRootCmd()

	// Register all commands
	root.Register(rootCmd)

	root.Execute()
}
