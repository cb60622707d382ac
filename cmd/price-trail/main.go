package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/pricetrail/price-trail/internal/fallback"
	"github.com/pricetrail/price-trail/internal/item"
	"github.com/pricetrail/price-trail/internal/ocr"
	"github.com/pricetrail/price-trail/internal/parsing"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("price-trail")
	var (
		port            = fs.IntLong("port", 8080, "HTTP server port")
		dbPath          = fs.StringLong("db", "price-trail.db", "Database file path")
		transcriptsPath = fs.StringLong("transcripts", "./transcripts", "Raw OCR transcript archive directory")
		ocrURL          = fs.StringLong("ocr-url", "", "OCR sidecar base URL (image upload disabled when unset)")
		ocrLanguage     = fs.StringLong("ocr-language", "eng", "OCR language")
		fallbackType    = fs.StringLong("fallback", "none", "Text-understanding fallback: 'gemini', 'ollama', or 'none'")
		geminiKey       = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel     = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
		ollamaURL       = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel     = fs.StringLong("ollama-model", "llama3", "Ollama model name")
		authUser        = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass        = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		showVersion     = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("PRICE_TRAIL"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Initialize database
	slog.Info("Initializing database...")
	store, err := item.NewBoltStore(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Initialize transcript archive
	transcripts, err := item.NewLocalTranscripts(*transcriptsPath)
	if err != nil {
		slog.Error("Failed to initialize transcript archive", "error", err)
		os.Exit(1)
	}

	// Initialize OCR recognizer if a sidecar is configured
	var recognizer ocr.Recognizer
	if *ocrURL != "" {
		slog.Info("Initializing OCR client...", "url", *ocrURL, "language", *ocrLanguage)
		recognizer, err = ocr.NewTesseractClient(*ocrURL, *ocrLanguage)
		if err != nil {
			slog.Error("Failed to initialize OCR client", "error", err)
			os.Exit(1)
		}
		defer recognizer.Close()
	} else {
		slog.Info("No OCR service configured; only text input is accepted")
	}

	// Initialize text-understanding fallback based on type
	var extractor fallback.Extractor
	switch *fallbackType {
	case "gemini":
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini fallback...", "model", *geminiModel)
		extractor, err = fallback.NewGemini(apiKey, *geminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini", "error", err)
			os.Exit(1)
		}
	case "ollama":
		slog.Info("Initializing Ollama fallback...", "url", *ollamaURL, "model", *ollamaModel)
		extractor, err = fallback.NewOllama(*ollamaURL, *ollamaModel)
		if err != nil {
			slog.Error("Failed to initialize Ollama", "error", err)
			os.Exit(1)
		}
	case "none", "":
		slog.Info("No text-understanding fallback configured")
	default:
		slog.Error("Invalid fallback type", "type", *fallbackType, "valid", "gemini, ollama, or none")
		os.Exit(1)
	}
	if extractor != nil {
		defer extractor.Close()
	}

	// Initialize parser and service
	parser := parsing.NewParser(extractor)
	service := item.NewService(store, transcripts, recognizer, parser)

	// Initialize server
	basicAuth := item.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := item.NewServer(service, basicAuth)

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}
