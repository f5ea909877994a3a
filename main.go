package main

import (
	"os"

	"github.com/Natnat0905/GeoChat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
