package main

import (
	"os"

	"github.com/goabroadai/goabroad/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
