// Command encephalon is the entry point for the encephalon simulator CLI.
package main

import (
	"github.com/hd220/encephalon/cmd"
)

func main() {
	cmd.Execute()
}
