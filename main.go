package main

import (
	"os"

	"github.com/rogersnm/tcli/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
