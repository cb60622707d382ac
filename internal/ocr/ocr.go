package ocr

import "context"

// Recognizer defines the interface to the external OCR engine. The engine is
// consumed as an opaque text-producing service: the rest of the system only
// ever sees the final transcript, never confidence scores or bounding boxes.
//
// A Recognizer is created once per process, passed down explicitly, and
// closed on teardown.
type Recognizer interface {
	// Recognize submits a receipt image and returns the OCR transcript
	Recognize(ctx context.Context, imageData []byte, contentType string) (string, error)
	// Close closes the recognizer and releases resources
	Close() error
}
