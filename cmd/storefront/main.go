package main

import (
	"fmt"
	"os"

	"QKart/internal/cli"
	"QKart/internal/storefront"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", storefront.Message(err))
		os.Exit(1)
	}
}
