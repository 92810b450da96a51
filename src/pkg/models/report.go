package models

import "time"

// CommitReport is the exported JSON summary of a rendered commit page
type CommitReport struct {
	Coordinates Coordinates       `json:"coordinates"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Commit      *CommitDescriptor `json:"commit,omitempty"`

	// File order matches the diff response
	Files []FileReport `json:"files"`

	AddedLineCount   int `json:"addedLineCount"`
	RemovedLineCount int `json:"removedLineCount"`
}

// FileReport summarizes one file of the diff
type FileReport struct {
	Path             string `json:"path"`
	HunkCount        int    `json:"hunkCount"`
	AddedLineCount   int    `json:"addedLineCount"`
	RemovedLineCount int    `json:"removedLineCount"`
}
