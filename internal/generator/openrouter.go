package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/grievance-service/internal/config"
	"github.com/spec-kit/grievance-service/internal/domain"
	apperrors "github.com/spec-kit/grievance-service/pkg/errorutil"
)

// RawFields carries the citizen-supplied complaint fields the generator
// formalizes into an application text.
type RawFields struct {
	UserName       string
	DepartmentName string
	Problem        string
	Address        string
	Phone          string
}

// Generator turns raw complaint fields into a formal application text in the
// requested language. Output is not deterministic; callers may only rely on
// non-empty, boilerplate-free content.
type Generator interface {
	Draft(ctx context.Context, fields RawFields, language domain.ApplicationLanguage) (string, error)
}

// Doer is the minimal HTTP client surface, injected for tests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Upstream models append trailing notes despite the prompt; strip anything
// from a "Note:" marker (or its Hindi equivalent) to the end of the line.
var boilerplatePattern = regexp.MustCompile(`(\*\*नोट:.*|Note:.*)`)

type openRouterGenerator struct {
	cfg    config.GeneratorConfig
	client Doer
	logger *zap.Logger
}

// NewOpenRouterGenerator builds a Generator backed by the OpenRouter
// chat-completions API. A nil client falls back to a timeout-bounded default.
func NewOpenRouterGenerator(cfg config.GeneratorConfig, client Doer, logger *zap.Logger) Generator {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout()}
	}
	return &openRouterGenerator{cfg: cfg, client: client, logger: logger}
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
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (g *openRouterGenerator) Draft(ctx context.Context, fields RawFields, language domain.ApplicationLanguage) (string, error) {
	if strings.TrimSpace(fields.Problem) == "" ||
		strings.TrimSpace(fields.Address) == "" ||
		strings.TrimSpace(fields.Phone) == "" {
		return "", apperrors.NewValidationError("problem, address and phone are required", nil)
	}

	payload, err := json.Marshal(chatRequest{
		Model:    g.cfg.Model,
		Messages: []chatMessage{{Role: "user", Content: buildPrompt(fields, language)}},
	})
	if err != nil {
		return "", apperrors.NewUpstreamGenerationError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.APIURL, bytes.NewReader(payload))
	if err != nil {
		return "", apperrors.NewUpstreamGenerationError(err)
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if g.cfg.SiteURL != "" {
		req.Header.Set("HTTP-Referer", g.cfg.SiteURL)
	}
	if g.cfg.SiteName != "" {
		req.Header.Set("X-Title", g.cfg.SiteName)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", apperrors.NewUpstreamGenerationError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewUpstreamGenerationError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.logger.Warn("generation upstream returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("language", string(language)))
		return "", apperrors.NewUpstreamGenerationError(fmt.Errorf("upstream status %d", resp.StatusCode))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", apperrors.NewUpstreamGenerationError(err)
	}
	if len(parsed.Choices) == 0 {
		return "", apperrors.NewUpstreamGenerationError(fmt.Errorf("upstream returned no choices"))
	}

	content := StripBoilerplate(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", apperrors.NewUpstreamGenerationError(fmt.Errorf("upstream returned empty content"))
	}
	return content, nil
}

// StripBoilerplate removes trailing disclaimer/note lines from generated text.
func StripBoilerplate(text string) string {
	return strings.TrimSpace(boilerplatePattern.ReplaceAllString(text, ""))
}

func buildPrompt(fields RawFields, language domain.ApplicationLanguage) string {
	target := "English"
	if language == domain.LanguageHindi {
		target = "Hindi"
	}
	address := fields.Address
	if strings.TrimSpace(address) == "" {
		address = "Not Provided"
	}
	phone := fields.Phone
	if strings.TrimSpace(phone) == "" {
		phone = "Not Provided"
	}
	return fmt.Sprintf(`Convert this complaint into a formal, grammatically correct %s application without changing the original meaning. Use clear and concise language, but avoid adding any unnecessary notes or disclaimers. Include only the following details:
User Name: %s
Department Name: %s
Problem: %s
Address: %s
Phone: %s
Original Problem: %s`,
		target, fields.UserName, fields.DepartmentName, fields.Problem, address, phone, fields.Problem)
}
