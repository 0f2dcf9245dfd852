package session

import (
	"fmt"
	"os"
	"path/filepath"
)

// File is an uploaded media handle. MIMEType may be empty, in which case the
// decoder sniffs it from Data.
type File struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Size returns the payload length in bytes.
func (f File) Size() int {
	return len(f.Data)
}

// OpenFile reads a file from disk into a File handle.
func OpenFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("session: open media: %w", err)
	}
	return &File{
		Name: filepath.Base(path),
		Data: data,
	}, nil
}

// MediaInfo describes an attached handle without exposing its bytes.
type MediaInfo struct {
	Name     string `json:"name"`
	MIMEType string `json:"mimeType,omitempty"`
	Size     int    `json:"size"`
}
