package main

import (
	"os"

	"github.com/Ramsey-B/fern/cmd/fern/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
