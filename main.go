package main

import (
	"github.com/esc0rtd3w/performous-tools/cmd"
)

func main() {
	cmd.Execute()
}
