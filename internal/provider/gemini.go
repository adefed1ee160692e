package provider

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"along/internal/domain"
	"along/internal/utils"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ContentGenerator is the slice of the genai client used here; *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini fetches routes from the Gemini API.
type Gemini struct {
	Models   ContentGenerator
	Model    string
	Timeout  time.Duration
	Attempts int
	Backoff  time.Duration
}

// NewGemini builds a Gemini provider with its own API client.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration, attempts int) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &Gemini{
		Models:   client.Models,
		Model:    model,
		Timeout:  timeout,
		Attempts: attempts,
		Backoff:  500 * time.Millisecond,
	}, nil
}

func (g *Gemini) FetchRoute(ctx context.Context, q RouteQuery) (string, error) {
	if err := q.validate(); err != nil {
		return "", err
	}
	prompt := BuildPrompt(q)
	cfg := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0.2)}

	attempts := max(g.Attempts, 1)
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		text, err := g.generate(ctx, prompt, cfg)
		if err == nil {
			return text, nil
		}
		lastErr = classify(err)
		if !retryable(err) || ctx.Err() != nil {
			return "", lastErr
		}
		if attempt < attempts {
			utils.Log.Warn("route provider attempt failed",
				zap.Int("attempt", attempt),
				zap.String("region", string(q.Region)),
				zap.Error(err))
			select {
			case <-ctx.Done():
				return "", classify(ctx.Err())
			case <-time.After(g.Backoff * time.Duration(attempt)):
			}
		}
	}
	return "", lastErr
}

func (g *Gemini) generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}
	resp, err := g.Models.GenerateContent(ctx, g.Model, genai.Text(prompt), cfg)
	if err != nil {
		return "", err
	}
	return responseText(resp), nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(b.String())
}

func apiError(err error) (code int, msg string) {
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Code, apiErr.Message
	case errors.As(err, &apiErrPtr) && apiErrPtr != nil:
		return apiErrPtr.Code, apiErrPtr.Message
	}
	return 0, ""
}

// retryable reports whether another attempt can succeed. Only 429 and 5xx API
// codes qualify; a 404 means a wrong model name and never recovers.
func retryable(err error) bool {
	if kind, ok := domain.ProviderKind(classify(err)); !ok || kind != domain.ProviderUnavailable {
		return false
	}
	code, _ := apiError(err)
	return code == 0 || code == http.StatusTooManyRequests || code >= 500
}

// classify maps transport and API failures onto provider error kinds.
func classify(err error) error {
	if _, ok := domain.ProviderKind(err); ok {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.ProviderError{Kind: domain.ProviderUnavailable, Msg: "route provider timed out", Err: err}
	}

	code, msg := apiError(err)

	switch {
	case strings.Contains(msg, "API key not valid"),
		code == http.StatusUnauthorized,
		code == http.StatusForbidden:
		return domain.ProviderError{Kind: domain.ProviderAuth, Msg: "route provider rejected the API key", Err: err}
	case code == http.StatusBadRequest:
		return domain.ProviderError{Kind: domain.ProviderInvalidInput, Msg: "route provider rejected the request", Err: err}
	case code == http.StatusNotFound:
		return domain.ProviderError{Kind: domain.ProviderUnavailable, Msg: "route provider model not found, check GEMINI_MODEL", Err: err}
	default:
		return domain.ProviderError{Kind: domain.ProviderUnavailable, Msg: "route provider unavailable", Err: err}
	}
}
