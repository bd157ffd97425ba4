// SPDX-License-Identifier: EPL-2.0

// Package region tracks the single selectable time interval over a
// decoded audio asset.
//
// A Model is shared by the clip editor and the practice player: the
// editor mutates it through Create, Update and SetFromCursor, while the
// player reads it to gate transport and looping. The model enforces two
// invariants:
//
//   - at most one region exists at a time; Create replaces the previous
//     region atomically so observers never see two regions
//   - a mutation that would produce end <= start is rejected as a no-op,
//     keeping the last valid state
//
// All bounds are expressed in seconds of the original, unscaled timeline
// and are clamped to [0, asset duration].
//
// Subscribers registered with Subscribe are notified after every change
// with the new region, or nil when the region was cleared. The model has
// no other side effects; it never touches the audio graph.
package region
