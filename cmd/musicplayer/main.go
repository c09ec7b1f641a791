// Command musicplayer проигрывает один аудиофайл.
//
// Использование:
//
//	musicplayer play FILE [--offset 5s] [--volume 0.8]
//	musicplayer shell [FILE]
package main

import (
	"fmt"
	"os"

	"github.com/Roman77St/musicplayer/cmd/musicplayer/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
