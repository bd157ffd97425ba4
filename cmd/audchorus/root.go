// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "audchorus",
	Short: "Cut and play back regions of audio files",
	Long: `audchorus works with a time window over an audio file: select a
region, extract it as a standalone WAV clip, or play it in a loop with
independent speed and gain for practice.

Supported input formats: WAV, MP3, Ogg Vorbis, AIFF.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(playCmd)
}

// envFloat reads a float default from the environment, falling back to
// def when unset or malformed.
func envFloat(key string, def float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

// parseWindow parses a "start:end" pair of seconds.
func parseWindow(s string) (start, end float64, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("window %q: want start:end in seconds", s)
	}

	start, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("window %q: %w", s, err)
	}
	end, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("window %q: %w", s, err)
	}

	return start, end, nil
}
