package collection

// Package collection implements the ordered file list the user builds before
// merging: adds with filesystem metadata, recursive folder scans for PDFs,
// removal, and move up/down reordering. Paths are unique within the list.
