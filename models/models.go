package models

import (
	"context"
	"time"
)

// Kind tells how an entry should be opened on the provider side.
type Kind string

const (
	KindFolder      Kind = "folder"
	KindPDF         Kind = "pdf"
	KindSpreadsheet Kind = "spreadsheet"
)

// FileEntry is the normalized form of a remote file record.
// Built once per fetch and never mutated afterwards; a folder
// navigation replaces the whole set instead of patching it.
type FileEntry struct {
	Id          string
	Name        string
	Kind        Kind
	Size        string // already rendered for display ("1.50 KB", "—", "Unknown")
	Modified    time.Time
	ViewURL     string
	DownloadURL string // empty for folders
	IsFolder    bool   // redundant with Kind, kept for fast branching
}

// Breadcrumb is one step of the trail from root (exclusive) to
// the currently open folder.
type Breadcrumb struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// Lister returns the normalized contents of a remote folder.
// Empty id means the configured root folder.
type Lister interface {
	ListFolder(ctx context.Context, folderId string) ([]FileEntry, error)
}
