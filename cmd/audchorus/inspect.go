// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/audchorus"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Print the decoded properties of an audio file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, err := audchorus.LoadFile(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("File:        %s\n", args[0])
		fmt.Printf("Sample rate: %d Hz\n", buf.SampleRate())
		fmt.Printf("Channels:    %d\n", buf.Channels())
		fmt.Printf("Frames:      %d\n", buf.Frames())
		fmt.Printf("Duration:    %.3f s\n", buf.Duration())

		return nil
	},
}
