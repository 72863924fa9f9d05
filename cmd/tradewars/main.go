package main

import (
	"os"

	"github.com/Jinish2170/Tradewars/cmd/tradewars/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
