package main

import (
	"os"

	"github.com/anggasct/stately/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
