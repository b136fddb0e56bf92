package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"wanderlog/pkg/metrics"
)

// ErrScorerUnavailable возвращается, когда внешняя модель оценки
// недоступна или вернула некорректный ответ.
var ErrScorerUnavailable = errors.New("text scorer unavailable")

// scoreRequest - тело запроса к модели
type scoreRequest struct {
	Text string `json:"text"`
}

// scoreResponse - ответ модели: нормализованная оценка текста
type scoreResponse struct {
	Score float64 `json:"score"`
}

// ScorerAPIClient реализует ScorerClient поверх HTTP.
// Модель развернута отдельным сервисом (sidecar) и отвечает на POST /predict.
type ScorerAPIClient struct {
	apiURL     string
	httpClient *http.Client
}

// NewScorerAPIClient создает новый HTTP клиент модели оценки текста.
// timeoutSec ограничивает каждый вызов, чтобы медленная модель
// не держала запрос бесконечно.
func NewScorerAPIClient(apiURL string, timeoutSec int) *ScorerAPIClient {
	return &ScorerAPIClient{
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
	}
}

// Score оценивает один текст через внешнюю модель
func (c *ScorerAPIClient) Score(ctx context.Context, text string) (float64, error) {
	payload, err := json.Marshal(scoreRequest{Text: text})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	timer := metrics.NewScorerTimer("places-service")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		timer.Error()
		return 0, fmt.Errorf("%w: %v", ErrScorerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		timer.Error()
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("%w: scorer returned status %d: %s", ErrScorerUnavailable, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		timer.Error()
		return 0, fmt.Errorf("failed to read scorer response: %w", err)
	}

	var result scoreResponse
	if err := json.Unmarshal(body, &result); err != nil {
		timer.Error()
		return 0, fmt.Errorf("%w: failed to unmarshal scorer response: %v", ErrScorerUnavailable, err)
	}

	if result.Score < 0 || result.Score > 1 {
		timer.Error()
		return 0, fmt.Errorf("%w: score %f out of range [0,1]", ErrScorerUnavailable, result.Score)
	}

	timer.Success()
	return result.Score, nil
}
