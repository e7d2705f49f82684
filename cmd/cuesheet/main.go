package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "cuesheet",
		Short:   "cuesheet — media-buying schedule quoting",
		Version: version,
	}

	root.AddCommand(
		newQuoteCmd(),
		newCatalogCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
