package platform

// Package platform contains OS/platform integration: filesystem helpers,
// PDF file name matching, default output locations, and OS open/reveal.
