package main

import (
	"os"

	"github.com/pydata-academy/academy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
