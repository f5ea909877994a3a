// Package ocr extracts text from uploaded images through the OCR.space API
// and screens the result for a usable math problem.
package ocr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultAPIURL = "https://api.ocr.space/parse/image"

// Client calls the OCR.space parse endpoint.
type Client struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
	log        *zap.Logger
}

// Option configures the Client during construction.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithBaseURL points the client at a different endpoint.
func WithBaseURL(u string) Option {
	return func(cl *Client) { cl.apiURL = u }
}

// WithLogger configures structured logging.
func WithLogger(log *zap.Logger) Option {
	return func(cl *Client) { cl.log = log }
}

// NewClient creates an OCR.space client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		apiURL:     defaultAPIURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// filetypeByMIME maps content types onto the filetype values the API accepts.
var filetypeByMIME = map[string]string{
	"image/png":  "PNG",
	"image/jpeg": "JPG",
	"image/jpg":  "JPG",
	"image/gif":  "GIF",
	"image/bmp":  "BMP",
}

// extensionBySubtype maps MIME subtypes onto upload filename extensions.
var extensionBySubtype = map[string]string{
	"jpeg": "jpg",
}

// parseResponse is the OCR.space reply envelope.
type parseResponse struct {
	OCRExitCode  int `json:"OCRExitCode"`
	ParsedResult []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	ErrorMessage json.RawMessage `json:"ErrorMessage"`
}

// errorMessage extracts the API error, which arrives as either a string or
// an array of strings.
func (r parseResponse) errorMessage() string {
	var list []string
	if json.Unmarshal(r.ErrorMessage, &list) == nil && len(list) > 0 {
		return list[0]
	}
	var single string
	if json.Unmarshal(r.ErrorMessage, &single) == nil && single != "" {
		return single
	}
	return "OCR failed"
}

// ExtractText uploads an image and returns the recognized text, trimmed.
// The content type must be an image MIME type.
func (c *Client) ExtractText(ctx context.Context, image io.Reader, contentType string) (string, error) {
	mimeType := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	mainType, subType, _ := strings.Cut(mimeType, "/")
	if mainType != "image" {
		return "", fmt.Errorf("invalid content type %q", contentType)
	}

	extension := subType
	if ext, ok := extensionBySubtype[subType]; ok {
		extension = ext
	}

	var body strings.Builder
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("apikey", c.apiKey); err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if err := writer.WriteField("isOverlayRequired", "false"); err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if filetype, ok := filetypeByMIME[mimeType]; ok {
		if err := writer.WriteField("filetype", filetype); err != nil {
			return "", fmt.Errorf("build request: %w", err)
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="image"; filename="image.%s"`, extension))
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(body.String()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("OCR request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("OCR request failed", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("OCR API returned status %d", resp.StatusCode)
	}

	var result parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode OCR response: %w", err)
	}

	if result.OCRExitCode != 1 {
		msg := result.errorMessage()
		c.log.Error("OCR API error", zap.String("message", msg))
		return "", fmt.Errorf("OCR processing failed: %s", msg)
	}
	if len(result.ParsedResult) == 0 {
		return "", nil
	}
	return strings.TrimSpace(result.ParsedResult[0].ParsedText), nil
}
