// Package main is the entry point for the mkconfgen CLI.
package main

import (
	"fmt"
	"os"

	"github.com/zirkelkoenig/MKConfGen/cmd/mkconfgen/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(app.ExitCode(err))
	}
}
