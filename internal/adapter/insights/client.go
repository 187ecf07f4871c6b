package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ukemeuu/mani24-kds/internal/config"
	"github.com/ukemeuu/mani24-kds/internal/domain"
)

// ChefInsight is one piece of kitchen-management advice for the chef station.
type ChefInsight struct {
	Title   string `json:"title"`
	Advice  string `json:"advice"`
	Urgency string `json:"urgency"` // low | medium | high
}

// orderSummary is the compact kitchen state sent to the insight service.
type orderSummary struct {
	Status      domain.Status `json:"status"`
	Items       []string      `json:"items"`
	TimeElapsed int           `json:"time_elapsed"` // minutes since creation
}

type Client struct {
	endpoint string
	apiKey   string
	menuURL  string
	http     *http.Client
}

func NewClient(cfg config.InsightsConfig) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		menuURL:  cfg.MenuURL,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Enabled() bool {
	return c.endpoint != "" && c.apiKey != ""
}

// Fetch summarizes the active (non-dispatched) orders and asks the insight
// service for advice. A rate-limited response surfaces as ErrServicePaused so
// callers can show a distinct "service paused" condition.
func (c *Client) Fetch(ctx context.Context, orders []domain.Order, now int64) ([]ChefInsight, error) {
	summaries := make([]orderSummary, 0, len(orders))
	for _, o := range orders {
		if o.Status == domain.StatusDispatched {
			continue
		}
		names := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			names = append(names, it.Name)
		}
		summaries = append(summaries, orderSummary{
			Status:      o.Status,
			Items:       names,
			TimeElapsed: int((now - o.CreatedAt) / 60000),
		})
	}

	payload, err := json.Marshal(map[string]any{
		"menu_url": c.menuURL,
		"kitchen":  summaries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal kitchen summary: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build insight request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("insight call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, domain.ErrServicePaused
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("insight service returned %d", resp.StatusCode)
	}

	var insights []ChefInsight
	if err := json.NewDecoder(resp.Body).Decode(&insights); err != nil {
		return nil, fmt.Errorf("failed to decode insights: %w", err)
	}
	return insights, nil
}
