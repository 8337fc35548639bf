package model

// Package model defines domain data structures used across the app: file
// entries of the merge list, merge jobs with their status, the events a job
// emits, and the error taxonomy shared by the collection and merge pipeline.
