package main

import (
	"os"

	"github.com/jpartition/jpartition/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}