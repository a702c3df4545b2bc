package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/livelink/cmd/livelink"
)

func main() {
	rootCmd := livelink.NewRootCmd()

	err := doc.GenMan(rootCmd, livelink.ManHeader(), os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
