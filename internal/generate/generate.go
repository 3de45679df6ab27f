// package generate implements the article generation client.
//
// Articles are produced by an OpenAI-compatible chat completions endpoint
// (Gemini's compatibility layer by default). The model is instructed to
// return a bare JSON object with the article text and a vocabulary list;
// responses wrapped in markdown code fences are unwrapped before parsing.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/dokusho-app/dokusho/internal/models"
	"github.com/dokusho-app/dokusho/internal/shared"
)

const (
	maxAttempts  = 3
	retryBackoff = 3 * time.Second
)

// codeFence matches a ```json ... ``` (or bare ```) block so fenced model
// output can be reduced to the JSON payload inside.
var codeFence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// Client calls the generation API to produce level-appropriate reading
// material with a vocabulary list.
type Client struct {
	baseURL string
	model   string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	logger  *log.Logger
}

// ClientOpts configures a [Client]. HTTPClient and Logger are optional.
type ClientOpts struct {
	BaseURL           string
	Model             string
	APIKey            string
	RequestsPerMinute int
	HTTPClient        *http.Client
	Logger            *log.Logger
}

// NewClient validates opts and builds a client. The per-minute request
// budget is enforced locally with a token bucket so bursts from CLI or
// HTTP callers cannot trip the upstream quota.
func NewClient(opts ClientOpts) (*Client, error) {
	if opts.BaseURL == "" || opts.Model == "" {
		return nil, fmt.Errorf("%w: generation base URL and model are required", shared.ErrMissingConfig)
	}
	if opts.APIKey == "" {
		return nil, fmt.Errorf("%w: generation API key is not set", shared.ErrMissingConfig)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	rpm := opts.RequestsPerMinute
	if rpm <= 0 {
		rpm = 15
	}

	return &Client{
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		model:   opts.Model,
		apiKey:  opts.APIKey,
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
		logger:  logger,
	}, nil
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// generated is the JSON object the prompt instructs the model to emit.
type generated struct {
	Article    string                   `json:"article"`
	Vocabulary []models.VocabularyEntry `json:"vocabulary"`
}

// Generate produces an article about topic at the given level, in the
// identity's target language.
//
// Transient upstream congestion (HTTP 503) is retried up to three times
// with a fixed three second backoff; every other failure is returned
// immediately. When all attempts hit 503 the error wraps
// [shared.ErrServiceOverloaded] so callers can surface a retry-later hint.
func (c *Client) Generate(ctx context.Context, identity models.Identity, topic, level string) (*models.ArticleInput, error) {
	if topic == "" || level == "" {
		return nil, fmt.Errorf("%w: topic and level are required", shared.ErrInvalidInput)
	}

	prompt := buildPrompt(models.TargetFor(identity), topic, level)

	var lastStatus int
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrGenerationFailed, err)
		}

		body, status, err := c.complete(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrGenerationFailed, err)
		}
		lastStatus = status

		if status == http.StatusOK {
			input, err := parseArticle(body, topic, level)
			if err != nil {
				return nil, err
			}
			return input, nil
		}

		if status != http.StatusServiceUnavailable {
			return nil, fmt.Errorf("%w: upstream returned status %d", shared.ErrGenerationFailed, status)
		}

		c.logger.Warn("generation service overloaded", "attempt", attempt, "of", maxAttempts)
		if attempt < maxAttempts {
			select {
			case <-time.After(retryBackoff):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", shared.ErrGenerationFailed, ctx.Err())
			}
		}
	}

	return nil, fmt.Errorf("%w: gave up after %d attempts (last status %d)", shared.ErrServiceOverloaded, maxAttempts, lastStatus)
}

// complete performs one chat completion round trip, returning the message
// content and the HTTP status. A non-OK status is not an error here so the
// caller can decide whether to retry.
func (c *Client) complete(ctx context.Context, prompt string) (string, int, error) {
	payload, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, err
	}

	if resp.StatusCode != http.StatusOK {
		return "", resp.StatusCode, nil
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", resp.StatusCode, fmt.Errorf("decoding completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", resp.StatusCode, fmt.Errorf("completion response had no choices")
	}

	return parsed.Choices[0].Message.Content, resp.StatusCode, nil
}

// parseArticle extracts the generated JSON object from raw model output.
func parseArticle(content, topic, level string) (*models.ArticleInput, error) {
	cleaned := content
	if m := codeFence.FindStringSubmatch(content); m != nil {
		cleaned = m[1]
	}
	cleaned = strings.TrimSpace(cleaned)

	var g generated
	if err := json.Unmarshal([]byte(cleaned), &g); err != nil {
		return nil, fmt.Errorf("%w: model returned malformed JSON: %v", shared.ErrGenerationFailed, err)
	}
	if g.Article == "" {
		return nil, fmt.Errorf("%w: model returned an empty article", shared.ErrGenerationFailed)
	}

	return &models.ArticleInput{
		Topic:      topic,
		Level:      level,
		Article:    g.Article,
		Vocabulary: g.Vocabulary,
	}, nil
}
