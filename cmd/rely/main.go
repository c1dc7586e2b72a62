package main

import (
	"context"
	"fmt"
	"os"

	"github.com/build-flow-labs/rely/internal/rely/cli"
)

// Set by the release build.
var version = "dev"

func main() {
	if err := cli.NewRootCmd(version).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
