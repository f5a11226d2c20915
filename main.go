package main

//go:generate templ generate

import (
	"os"

	"github.com/abhisek/mathquiz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
