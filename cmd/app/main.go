package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "fitcheck",
		Usage: "Compare physical fitness measurements with peer averages",
		Commands: []*cli.Command{
			serveCommand,
			analyzeCommand,
		},
	}
}
