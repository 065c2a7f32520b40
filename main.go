package main

import (
	"os"

	"github.com/dehaleesankr/folio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
