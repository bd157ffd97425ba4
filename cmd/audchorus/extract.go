// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/audchorus"
)

var (
	extractWindows []string
	extractOutDir  string
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Cut one or more regions out of an audio file as WAV clips",
	Long: `Extract cuts each --window out of the input as a standalone
16-bit PCM WAV. The copy is sample accurate and untouched: no
resampling, no gain. Each clip is verified by re-decoding it before it
is written.

Clips are named <input>-<start>-<end>.wav in the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(extractWindows) == 0 {
			return fmt.Errorf("at least one --window is required")
		}

		path := args[0]
		buf, err := audchorus.LoadFile(path)
		if err != nil {
			return err
		}

		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

		// The buffer is immutable, so the windows extract concurrently.
		var eg errgroup.Group
		for _, w := range extractWindows {
			start, end, err := parseWindow(w)
			if err != nil {
				return err
			}

			out := filepath.Join(extractOutDir,
				fmt.Sprintf("%s-%g-%g.wav", base, start, end))

			eg.Go(func() error {
				artifact, err := audchorus.ExtractClip(buf, start, end)
				if err != nil {
					return fmt.Errorf("window %g:%g: %w", start, end, err)
				}

				if err := os.WriteFile(out, artifact.Bytes, 0o644); err != nil {
					return fmt.Errorf("window %g:%g: %w", start, end, err)
				}

				fmt.Printf("%s: %d frames\n", out, artifact.Frames)
				return nil
			})
		}

		return eg.Wait()
	},
}

func init() {
	extractCmd.Flags().StringArrayVarP(&extractWindows, "window", "w", nil,
		"region to cut as start:end in seconds (repeatable)")
	extractCmd.Flags().StringVarP(&extractOutDir, "out", "o", ".",
		"output directory for clips")
}
