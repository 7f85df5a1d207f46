package main

import (
	"os"

	"github.com/pdns-tui/pdns-tui/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
