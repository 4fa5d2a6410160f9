package main

import (
	"flag"

	"phosphor/internal/crt"
)

func main() {
	settings := flag.String("settings", "", "path to settings YAML (embedded defaults when empty)")
	flag.Parse()

	crt.RunDesktop(*settings)
}
