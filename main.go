package main

import (
	"github.com/alecthomas/kong"

	"plateful.dev/Plateful/cmd"
)

func main() {
	ctx := kong.Parse(&cmd.CLI, kong.Name("Plateful"), kong.Description("Plateful is a recipe discovery and meal planning service."))
	err := ctx.Run(&cmd.Context{Debug: cmd.CLI.Debug})
	ctx.FatalIfErrorf(err)
}
