package main

import (
	"context"
	"flag"
	"os"

	"github.com/sweeplab/minesweeper/internal/platform/config"
	"github.com/sweeplab/minesweeper/internal/tools/scorereport"
)

func main() {
	cfg, err := scorereport.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := scorereport.Run(context.Background(), cfg, os.Stdout); err != nil {
		config.Exitf("report scores: %v", err)
	}
}
