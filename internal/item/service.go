package item

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pricetrail/price-trail/internal/ocr"
	"github.com/pricetrail/price-trail/internal/parsing"
)

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service handles receipt processing: recognize, parse, persist.
type Service struct {
	store       Store
	transcripts Transcripts
	recognizer  ocr.Recognizer // nil when no OCR service is configured
	parser      *parsing.Parser
	timeSource  TimeSource
}

// NewService creates a new Service with the default time source
func NewService(store Store, transcripts Transcripts, recognizer ocr.Recognizer, parser *parsing.Parser) *Service {
	return &Service{
		store:       store,
		transcripts: transcripts,
		recognizer:  recognizer,
		parser:      parser,
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with a custom time source for testing
func NewServiceWithDeps(store Store, transcripts Transcripts, recognizer ocr.Recognizer, parser *parsing.Parser, timeSource TimeSource) *Service {
	return &Service{
		store:       store,
		transcripts: transcripts,
		recognizer:  recognizer,
		parser:      parser,
		timeSource:  timeSource,
	}
}

// ProcessImage runs OCR on a receipt image and processes the transcript
func (s *Service) ProcessImage(ctx context.Context, data []byte, contentType string) ([]*Item, error) {
	if s.recognizer == nil {
		return nil, fmt.Errorf("no ocr service configured")
	}

	text, err := s.recognizer.Recognize(ctx, data, contentType)
	if err != nil {
		slog.Error("Failed to recognize receipt",
			"content_type", contentType,
			"image_size", len(data),
			"error", err,
		)
		return nil, fmt.Errorf("recognizing receipt: %w", err)
	}

	return s.ProcessText(ctx, text)
}

// ProcessText parses one receipt's OCR transcript and persists the extracted
// items. The transcript is archived first so a bad parse can be replayed.
func (s *Service) ProcessText(ctx context.Context, text string) ([]*Item, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("receipt text is empty")
	}

	now := s.timeSource.Now()

	if s.transcripts != nil {
		name := fmt.Sprintf("%d.txt", now.UnixNano())
		if _, err := s.transcripts.Save(name, text); err != nil {
			slog.Warn("Failed to archive transcript", "name", name, "error", err)
		}
	}

	parsed := s.parser.Parse(ctx, text)

	items := make([]*Item, 0, len(parsed))
	for _, li := range parsed {
		item := &Item{
			Name:       li.Name,
			PriceTotal: li.PriceTotal,
			QtyValue:   li.QtyValue,
			QtyUnit:    li.QtyUnit,
			UnitPrice:  li.UnitPrice,
			Date:       li.Date,
			CreatedAt:  now,
		}
		if err := s.store.Append(item); err != nil {
			return nil, fmt.Errorf("saving item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

// ListItems returns all persisted items in insertion order
func (s *Service) ListItems() ([]*Item, error) {
	items, err := s.store.GetAll()
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return items, nil
}

// History returns the price history for one product name, ordered by date
func (s *Service) History(name string) ([]*Item, error) {
	items, err := s.store.History(name)
	if err != nil {
		return nil, fmt.Errorf("getting history: %w", err)
	}
	return items, nil
}

// Names returns the distinct product names, sorted
func (s *Service) Names() ([]string, error) {
	names, err := s.store.Names()
	if err != nil {
		return nil, fmt.Errorf("listing names: %w", err)
	}
	return names, nil
}
