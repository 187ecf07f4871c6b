package glovo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ukemeuu/mani24-kds/internal/adapter/logger"
	"github.com/ukemeuu/mani24-kds/internal/config"
	"github.com/ukemeuu/mani24-kds/internal/domain"
	"github.com/ukemeuu/mani24-kds/internal/interfaces"
)

// statusMap translates internal statuses to the platform vocabulary. Statuses
// absent from the map are not synced.
var statusMap = map[domain.Status]string{
	domain.StatusPreparing: "ACCEPTED",
	domain.StatusReady:     "READY_FOR_PICKUP",
}

type Client struct {
	apiURL    string
	authToken string
	http      *http.Client
	logger    logger.Logger
}

func NewClient(cfg config.GlovoConfig, lgr logger.Logger) *Client {
	return &Client{
		apiURL:    cfg.APIURL,
		authToken: cfg.AuthToken,
		http:      &http.Client{Timeout: 10 * time.Second},
		logger:    lgr,
	}
}

var _ interfaces.StatusSyncer = (*Client)(nil)

// SyncStatus pushes one mapped status change to the platform. A status with
// no mapping is a successful no-op.
func (c *Client) SyncStatus(ctx context.Context, storeID, externalOrderID string, status domain.Status) error {
	mapped, ok := statusMap[status]
	if !ok {
		return nil
	}

	payload, err := json.Marshal(map[string]string{"status": mapped})
	if err != nil {
		return fmt.Errorf("failed to marshal status payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/webhook/stores/%s/orders/%s/status", c.apiURL, storeID, externalOrderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.authToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("status sync call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("platform rejected status sync: %d - %s", resp.StatusCode, body)
	}

	c.logger.Debug("status_synced", "Status pushed to delivery platform", "", map[string]interface{}{
		"external_order_id": externalOrderID,
		"platform_status":   mapped,
	})
	return nil
}
