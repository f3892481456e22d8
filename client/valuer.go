package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jaydipmangukiya/Prop-valuer-sub000/models"
	"github.com/jaydipmangukiya/Prop-valuer-sub000/utils"
)

// Valuation is the backend's answer to one valuation request.
type Valuation struct {
	RequestID   string  `json:"request_id"`
	MarketValue float64 `json:"market_value"`
	RatePerSqFt float64 `json:"rate_per_sqft"`
	ReportURL   string  `json:"report_url"`
}

// Valuer submits valuation requests to the external valuation API.
type Valuer struct {
	endpoint string
	http     *http.Client
	logger   *utils.Logger
	pool     *utils.WorkerPool
	retry    *utils.RetryConfig
	sent     *utils.KeySet
}

// Options configures a Valuer.
type Options struct {
	Endpoint       string
	Timeout        time.Duration
	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int
	BaseDelay      time.Duration
}

// NewValuer creates a Valuer posting to opts.Endpoint.
func NewValuer(opts Options, logger *utils.Logger) *Valuer {
	if opts.BaseDelay == 0 {
		opts.BaseDelay = time.Second
	}
	return &Valuer{
		endpoint: opts.Endpoint,
		http:     &http.Client{Timeout: opts.Timeout},
		logger:   logger,
		pool:     utils.NewWorkerPool(opts.MaxConcurrency, opts.RateLimitMs),
		retry: &utils.RetryConfig{
			MaxAttempts: opts.MaxRetries,
			BaseDelay:   opts.BaseDelay,
			Logger:      logger,
		},
		sent: utils.NewKeySet(),
	}
}

// Submit posts one request. 4xx responses are not retried.
func (v *Valuer) Submit(ctx context.Context, req *models.ValuationRequest) (*Valuation, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("valuer: encode %s: %w", req.ID, err)
	}

	var out Valuation
	err = v.retry.DoContext(ctx, "submit-"+req.ID, func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, bytes.NewReader(body))
		if err != nil {
			return utils.Permanent(err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Accept", "application/json")

		resp, err := v.http.Do(httpReq)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return err
		}

		switch {
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("valuer: %s", resp.Status)
		case resp.StatusCode >= 400:
			return utils.Permanent(fmt.Errorf("valuer: %s: %s", resp.Status, bytes.TrimSpace(payload)))
		}

		if len(bytes.TrimSpace(payload)) == 0 {
			out = Valuation{RequestID: req.ID}
			return nil
		}
		if err := json.Unmarshal(payload, &out); err != nil {
			return utils.Permanent(fmt.Errorf("valuer: decode response: %w", err))
		}
		if out.RequestID == "" {
			out.RequestID = req.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitAll posts every request through the worker pool, skipping IDs this
// Valuer has already sent. It returns the valuations that succeeded and the
// errors of the ones that did not.
func (v *Valuer) SubmitAll(ctx context.Context, requests []*models.ValuationRequest) ([]*Valuation, []error) {
	results := make(chan *Valuation, len(requests))
	seenErrs := len(v.pool.Errors())

	for _, r := range requests {
		req := r
		if !v.sent.Add(req.ID) {
			v.logger.Debug("[valuer] Already submitted: %s", req.ID)
			continue
		}
		v.pool.SubmitErr(func() error {
			val, err := v.Submit(ctx, req)
			if err != nil {
				v.logger.Warn("[valuer] %s not valued: %v", req.ID, err)
				return err
			}
			results <- val
			return nil
		})
	}
	v.pool.Wait()
	close(results)

	valuations := make([]*Valuation, 0, len(results))
	for val := range results {
		valuations = append(valuations, val)
	}
	return valuations, v.pool.Errors()[seenErrs:]
}
