package main

import (
	"os"

	"moviespot/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
