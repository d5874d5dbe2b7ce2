package models

import "time"

// RemoteWordList is the bootstrap payload fetched on startup. Version strings
// are compared byte-for-byte against the locally stored version; any mismatch
// triggers a full replace of the local vocabulary.
type RemoteWordList struct {
	Version string       `json:"version"`
	Words   []WordRecord `json:"words"`
}

// ExportMetadata summarizes an export for the external merge tooling
type ExportMetadata struct {
	TotalWords        int         `json:"totalWords"`
	WordsWithProgress int         `json:"wordsWithProgress"`
	BoxDistribution   map[int]int `json:"boxDistribution"`
	DeviceType        string      `json:"deviceType"`
}

// ExportFile is the backup/merge payload. Word ids are stripped before export
// since they are store-local.
type ExportFile struct {
	Version        string         `json:"version"`
	ExportDate     time.Time      `json:"exportDate"`
	ExportMetadata ExportMetadata `json:"exportMetadata"`
	Words          []WordRecord   `json:"words"`
}
