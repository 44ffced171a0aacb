// Package resultsocr is the Google Cloud Vision text-detection client used
// to read scoreboard screenshots.
package resultsocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Black-And-White-Club/scrim-bot/config"
	"github.com/Black-And-White-Club/scrim-bot/internal/observability/attr"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
)

const (
	defaultEndpoint = "https://vision.googleapis.com/v1/images:annotate"
	visionScope     = "https://www.googleapis.com/auth/cloud-vision"

	// maxResponseBytes bounds annotate responses; full-text results for a
	// scoreboard are a few KB.
	maxResponseBytes = 4 << 20
)

// ErrVision wraps errors reported by the Vision API itself.
var ErrVision = errors.New("vision api error")

// VisionClient detects text in images by URL.
type VisionClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewVisionClient authenticates with the configured API key, or with
// application default credentials when no key is set.
func NewVisionClient(ctx context.Context, cfg config.VisionConfig, logger *slog.Logger) (*VisionClient, error) {
	var httpClient *http.Client
	if cfg.APIKey != "" {
		httpClient = &http.Client{}
	} else {
		c, err := google.DefaultClient(ctx, visionScope)
		if err != nil {
			return nil, fmt.Errorf("vision credentials: %w", err)
		}
		httpClient = c
	}
	httpClient.Timeout = cfg.Timeout

	return newVisionClient(httpClient, cfg, logger), nil
}

func newVisionClient(httpClient *http.Client, cfg config.VisionConfig, logger *slog.Logger) *VisionClient {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return &VisionClient{
		httpClient: httpClient,
		endpoint:   endpoint,
		apiKey:     cfg.APIKey,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
	}
}

type annotateRequest struct {
	Requests []imageRequest `json:"requests"`
}

type imageRequest struct {
	Image    image     `json:"image"`
	Features []feature `json:"features"`
}

type image struct {
	Source imageSource `json:"source"`
}

type imageSource struct {
	ImageURI string `json:"imageUri"`
}

type feature struct {
	Type string `json:"type"`
}

type annotateResponse struct {
	Responses []imageResponse `json:"responses"`
}

type imageResponse struct {
	FullTextAnnotation *struct {
		Text string `json:"text"`
	} `json:"fullTextAnnotation"`
	TextAnnotations []struct {
		Description string `json:"description"`
	} `json:"textAnnotations"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// DetectText returns the full text block recognized in the image at
// imageURL, or "" when the image contains no text.
func (c *VisionClient) DetectText(ctx context.Context, imageURL string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	body, err := json.Marshal(annotateRequest{Requests: []imageRequest{{
		Image:    image{Source: imageSource{ImageURI: imageURL}},
		Features: []feature{{Type: "TEXT_DETECTION"}},
	}}})
	if err != nil {
		return "", fmt.Errorf("encode annotate request: %w", err)
	}

	endpoint := c.endpoint
	if c.apiKey != "" {
		endpoint += "?key=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build annotate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("annotate: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read annotate response: %w", err)
	}

	c.logger.DebugContext(ctx, "Vision annotate response",
		attr.ExtractCorrelationID(ctx),
		attr.Int("status", resp.StatusCode),
		attr.Int("bytes", len(raw)),
		attr.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("%w: status %d", ErrVision, resp.StatusCode)
	}

	var parsed annotateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode annotate response: %w", err)
	}
	if len(parsed.Responses) == 0 {
		return "", nil
	}

	r := parsed.Responses[0]
	switch {
	case r.Error != nil:
		return "", fmt.Errorf("%w: %d %s", ErrVision, r.Error.Code, r.Error.Message)
	case r.FullTextAnnotation != nil:
		return r.FullTextAnnotation.Text, nil
	case len(r.TextAnnotations) > 0:
		return r.TextAnnotations[0].Description, nil
	}
	return "", nil
}
