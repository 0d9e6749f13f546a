package metricsaggregator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент агрегатора метрик сервисных точек.
// Движок планирования только отправляет сигнал пересчета,
// сами агрегаты считает внешний сервис.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента агрегатора метрик
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// TriggerRecalculation отправляет сигнал пересчета агрегатов точки.
// При недоступности агрегатора возвращает ErrServiceDegraded - вызывающая
// сторона логирует и продолжает, переход статуса уже зафиксирован.
func (c *Client) TriggerRecalculation(ctx context.Context, req RecalculationRequest) error {
	url := fmt.Sprintf("%s/internal/service-points/%d/recalculate", c.baseURL, req.ServicePointID)

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Error("MetricsAggregator unavailable, recalculation signal lost: point_id=%d, booking_id=%d: %v",
			req.ServicePointID, req.BookingID, err)
		return fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
