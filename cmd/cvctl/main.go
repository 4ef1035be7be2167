package main

import (
	"context"
	"fmt"
	"os"

	"cv-builder/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "cvctl: %v\n", err)
		os.Exit(1)
	}
}
