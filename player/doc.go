// SPDX-License-Identifier: EPL-2.0

/*
Package player drives playback of a decoded asset through a small audio
graph with independent speed and gain control.

A Controller owns one session at a time. Load builds the graph for a
decoded audio.Buffer:

	source cursor -> rate stage -> boost gain -> sink

The rate stage changes tempo. The preferred backend stretches time with
pitch preserved (overlap-add over the buffer); assets shorter than one
analysis window fall back to a resampling backend where pitch follows
the rate. Backend reports which path a session got.

Gain is two-tier. Factors up to 1.0 map to the sink's native volume.
Past unity the sink is pinned at full volume and the excess runs
through the boost stage inside the graph, up to MaxGain. Speed is
clamped to [MinSpeed, MaxSpeed] and never mutates the asset.

Positions and regions live on the original, unscaled timeline, so a
region set at speed 1.0 stays valid at any speed. A monitor goroutine
polls the position while playing and keeps it inside the active region:
past the end it loops back or pauses, before the start it snaps
forward. The sink's natural end-of-media signal feeds the same monitor,
so finishing the asset and hitting a region boundary follow one code
path.

At most one graph is alive per Slot. Loading displaces whatever
occupied the slot, from this controller or another, and tears it down
before claiming the output device. Production controllers share
DefaultSlot; tests inject their own.

The device sink renders through miniaudio. Tests substitute a Sink that
is driven manually, so the whole transport is testable without
hardware.
*/
package player
