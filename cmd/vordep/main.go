package main

import (
	"os"

	"github.com/pirakansa/vordep/internal/cli/commands"
)

func main() {
	os.Exit(commands.Execute())
}
