package merge

// Package merge implements the merge pipeline: at most one job at a time runs
// on a single worker goroutine, validates inputs in order, skips invalid ones,
// and writes the concatenated output only when at least one input was valid.
// Progress and the terminal outcome are posted on a per-job channel.
