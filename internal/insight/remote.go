package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"reclaim/backend/internal/model"
)

const (
	maxTitleRunes       = 100
	maxDescriptionRunes = 300
)

type remoteRequest struct {
	Model          string      `json:"model"`
	Task           string      `json:"task"`
	MaxSuggestions int         `json:"max_suggestions"`
	Input          remoteInput `json:"input"`
}

type remoteInput struct {
	Profile      model.Profile `json:"profile"`
	Usage        []remoteUsage `json:"usage"`
	Instructions string        `json:"instructions"`
}

type remoteUsage struct {
	Date string           `json:"date"`
	Apps []model.AppUsage `json:"apps"`
}

type remoteResponse struct {
	Suggestions []model.Suggestion `json:"suggestions"`
}

// remoteSuggestions makes the single remote attempt of one generation run.
// There is no retry; any failure routes the caller to the local fallback.
func (e *Engine) remoteSuggestions(ctx context.Context, profile model.Profile, logs []model.UsageLog) ([]model.Suggestion, error) {
	usage := make([]remoteUsage, 0, len(logs))
	for _, usageLog := range logs {
		usage = append(usage, remoteUsage{Date: usageLog.Date, Apps: usageLog.Apps})
	}

	payload, err := json.Marshal(remoteRequest{
		Model:          e.model,
		Task:           "digital_wellness_recommendations",
		MaxSuggestions: maxSuggestions,
		Input: remoteInput{
			Profile:      profile,
			Usage:        usage,
			Instructions: "Return exactly 3 short, actionable suggestions as JSON objects with title, description and an optional link, personalized to the profile and usage.",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var parsed remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return sanitizeSuggestions(parsed.Suggestions), nil
}

// sanitizeSuggestions bounds remote output: empty items are dropped, text
// is trimmed and truncated, and the list is capped at maxSuggestions. The
// result may hold fewer than 3 items; zero usable items sends the caller
// to the local fallback.
func sanitizeSuggestions(items []model.Suggestion) []model.Suggestion {
	sanitized := make([]model.Suggestion, 0, maxSuggestions)
	for _, item := range items {
		title := truncateRunes(strings.TrimSpace(item.Title), maxTitleRunes)
		description := truncateRunes(strings.TrimSpace(item.Description), maxDescriptionRunes)
		if title == "" || description == "" {
			continue
		}
		sanitized = append(sanitized, model.Suggestion{
			Title:       title,
			Description: description,
			Link:        strings.TrimSpace(item.Link),
		})
		if len(sanitized) == maxSuggestions {
			break
		}
	}
	return sanitized
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
