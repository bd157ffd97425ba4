// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ik5/audchorus"
	"github.com/ik5/audchorus/player"
)

var (
	playSpeed  float64
	playGain   float64
	playLoop   bool
	playWindow string
)

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Play an audio file, optionally looping a region",
	Long: `Play renders the file to the default output device. With --window
playback is confined to that region; with --loop it repeats until
interrupted. Speed changes preserve pitch. Gain above 1.0 amplifies
past the device's native volume, up to 3.0.

Defaults for --speed and --gain can come from AUDCHORUS_SPEED and
AUDCHORUS_GAIN (or a .env file).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, err := audchorus.LoadFile(args[0])
		if err != nil {
			return err
		}

		done := make(chan struct{}, 1)

		ctl := player.New(player.Options{
			Events: player.Events{
				OnStatusChanged: func(s player.Status) {
					if s == player.StatusPaused {
						select {
						case done <- struct{}{}:
						default:
						}
					}
				},
				OnError: func(err error) {
					fmt.Fprintln(os.Stderr, "playback:", err)
				},
			},
		})
		defer ctl.Close()

		if err := ctl.Load(buf); err != nil {
			return err
		}

		if playWindow != "" {
			start, end, err := parseWindow(playWindow)
			if err != nil {
				return err
			}
			if _, err := ctl.Region().Create(start, end); err != nil {
				return err
			}
		}

		if err := ctl.SetSpeed(playSpeed); err != nil {
			return err
		}
		if err := ctl.SetGain(playGain); err != nil {
			return err
		}
		ctl.SetLoop(playLoop)

		backend, err := ctl.Backend()
		if err != nil {
			return err
		}
		fmt.Printf("Playing %s (%.3f s, %s backend, %.2fx)\n",
			args[0], buf.Duration(), backend, ctl.Speed())

		if err := ctl.Play(); err != nil {
			return err
		}

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sig)

		select {
		case <-done:
		case <-sig:
			fmt.Println("\nInterrupted")
		}

		return nil
	},
}

func init() {
	playCmd.Flags().Float64VarP(&playSpeed, "speed", "s",
		envFloat("AUDCHORUS_SPEED", 1.0),
		"tempo factor in [0.5, 2.0], pitch preserved")
	playCmd.Flags().Float64VarP(&playGain, "gain", "g",
		envFloat("AUDCHORUS_GAIN", 1.0),
		"output gain in [0, 3.0]")
	playCmd.Flags().BoolVarP(&playLoop, "loop", "l", false,
		"loop the region (or the whole file)")
	playCmd.Flags().StringVarP(&playWindow, "window", "w", "",
		"confine playback to start:end in seconds")
}
