// ./main.go
package main

import (
	"github.com/xkilldash9x/framepoint/cmd"
)

// main is the entry point for the framepoint CLI.
func main() {
	cmd.Execute()
}
