package item

import (
	"fmt"
	"os"
	"path/filepath"
)

// Transcripts defines the interface for archiving raw OCR transcripts.
// A bad parse can be replayed later from the archived text.
type Transcripts interface {
	// Save archives a transcript and returns its filename
	Save(name string, text string) (string, error)

	// Get retrieves an archived transcript
	Get(name string) (string, error)
}

// LocalTranscripts implements the Transcripts interface using the local
// filesystem
type LocalTranscripts struct {
	basePath string
}

// NewLocalTranscripts creates a new LocalTranscripts instance
func NewLocalTranscripts(basePath string) (*LocalTranscripts, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating transcript directory: %w", err)
	}

	return &LocalTranscripts{
		basePath: basePath,
	}, nil
}

// Save archives a transcript to local storage
func (l *LocalTranscripts) Save(name string, text string) (string, error) {
	path := filepath.Join(l.basePath, name)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("writing transcript: %w", err)
	}
	return name, nil
}

// Get retrieves an archived transcript from local storage
func (l *LocalTranscripts) Get(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(l.basePath, name))
	if err != nil {
		return "", fmt.Errorf("reading transcript: %w", err)
	}
	return string(data), nil
}
