package models

import (
	"time"
)

// FileRecord describes one regular file discovered during a scan
type FileRecord struct {
	Path       string    `json:"path"`                  // Absolute file path
	Name       string    `json:"name"`                  // File name
	Extension  string    `json:"extension,omitempty"`   // File extension (without dot)
	Size       int64     `json:"size"`                  // File size in bytes
	ModTime    time.Time `json:"modified"`              // Modification time
	ChangeTime time.Time `json:"change_time,omitempty"` // Change time (inode)
	IsSymlink  bool      `json:"is_symlink,omitempty"`  // Is symbolic link
	IsHidden   bool      `json:"is_hidden,omitempty"`   // Is hidden file
}
