package main

import (
	"os"

	"smart-stadium/internal/cli"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cli.Execute()
}
