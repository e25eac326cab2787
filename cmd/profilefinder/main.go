package main

import (
	"github.com/bornholm/profilefinder/internal/command"
	"github.com/bornholm/profilefinder/internal/command/lookup"
	"github.com/bornholm/profilefinder/internal/command/schema"
)

var version = "dev"

func main() {
	command.Main(
		"profilefinder",
		version,
		"Find a profile from the first organic result of a web search",
		lookup.Lookup(),
		schema.Schema(),
	)
}
