package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TesseractClient implements the Recognizer interface against a Tesseract
// sidecar service.
type TesseractClient struct {
	baseURL  string
	language string
	client   *http.Client
}

// NewTesseractClient creates a new TesseractClient instance
func NewTesseractClient(baseURL string, language string) (*TesseractClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("ocr service url is required")
	}
	if language == "" {
		language = "eng"
	}

	return &TesseractClient{
		baseURL:  baseURL,
		language: language,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// recognizeRequest represents the request body for the OCR service
type recognizeRequest struct {
	Image    string `json:"image"` // base64-encoded PNG
	Language string `json:"language"`
}

// recognizeResponse represents the response from the OCR service
type recognizeResponse struct {
	Text string `json:"text"`
}

// Recognize submits a receipt image and returns the OCR transcript. The
// image is normalized to PNG first; the sidecar only accepts PNG input.
func (t *TesseractClient) Recognize(ctx context.Context, imageData []byte, contentType string) (string, error) {
	pngData, err := NormalizeImage(imageData, contentType)
	if err != nil {
		return "", err
	}

	reqBody := recognizeRequest{
		Image:    base64.StdEncoding.EncodeToString(pngData),
		Language: t.language,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/recognize", t.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling ocr service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ocr service error (status %d): %s", resp.StatusCode, string(body))
	}

	var recResp recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&recResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	return recResp.Text, nil
}

// Close closes the client (no-op for HTTP client)
func (t *TesseractClient) Close() error {
	return nil
}
