// Package frames extracts still images from uploaded videos.
//
// The Sampler computes a timestamp grid from the clip duration (whole
// seconds, clamped to [1,5]s between samples, always ending at the clip's
// duration) and captures one frame per timestamp through a Decoder. Capture
// is strictly sequential within a video because overlapping seeks on one
// decode pipeline are unreliable; independent videos run concurrently via
// SampleAll, one decoder each.
//
// Per-frame failures are skipped, not fatal: a partial frame set beats no
// frames. The whole extraction runs under a 30-second budget.
//
// Thumbnail is the single-frame specialization used for video previews.
// FFmpegDecoder is the production Decoder; tests inject fakes.
package frames
