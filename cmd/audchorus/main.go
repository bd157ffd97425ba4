// SPDX-License-Identifier: EPL-2.0

// Command audchorus cuts and plays back regions of audio files.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Flag defaults in play.go read the environment at init time. Within a
// package, file inits run in file-name order, and play.go sorts after
// this file, so the .env values are in place by then.
func init() {
	// Optional .env supplies flag defaults; a missing file is not an
	// error.
	_ = godotenv.Load()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
