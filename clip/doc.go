// SPDX-License-Identifier: EPL-2.0

// Package clip turns a selected region of a decoded asset into a
// standalone encoded audio artifact.
//
// Extraction is a pure, sample-accurate copy: the selected frames are
// quantized to 16-bit PCM and muxed into a canonical WAV container, with
// no resampling, filtering or gain. Callers that want a smaller lossy
// format re-encode the verified artifact afterwards; that stage never
// sees raw asset samples, so it cannot introduce extraction bugs.
//
// Every artifact is verified before it is returned: the bytes are decoded
// again with an independent WAV decoder and compared sample for sample.
// Extraction therefore either returns a provably decodable artifact or an
// error, never a silently corrupt result.
package clip
