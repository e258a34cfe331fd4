package imghost

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to an ImgBB-style image hosting API: it takes a raw image,
// sends it base64-encoded together with the API key and gets back the
// hosted URL. No retries; a failed upload is reported as-is.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new image host client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
	}, nil
}

// Upload sends the image to the host and returns its hosted location.
func (c *Client) Upload(ctx context.Context, image []byte, name string) (*UploadResult, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}

	form := url.Values{}
	form.Set("key", c.config.APIKey)
	form.Set("image", base64.StdEncoding.EncodeToString(image))
	if name != "" {
		form.Set("name", name)
	}

	endpoint := fmt.Sprintf("%s/upload", strings.TrimRight(c.config.BaseURL, "/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach image host: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image host response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUploadFailed, resp.StatusCode)
	}

	var parsed uploadResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal image host response: %w", err)
	}

	if !parsed.Success || parsed.Data.URL == "" {
		return nil, ErrUploadFailed
	}

	return &UploadResult{
		URL:        parsed.Data.URL,
		DisplayURL: parsed.Data.DisplayURL,
		DeleteURL:  parsed.Data.DeleteURL,
	}, nil
}
