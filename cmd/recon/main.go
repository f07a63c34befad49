package main

import (
	"os"

	"github.com/timmy/reconlens/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
