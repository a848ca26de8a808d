package main

import (
	"os"

	"github.com/zoomerslab/hsclab/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
