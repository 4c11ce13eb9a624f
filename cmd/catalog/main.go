package main

import (
	"os"

	"github.com/codegym/product-catalog/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
