// Package notify reports attendance transitions to a webhook.
package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"kintai/internal/core/model"
	"kintai/internal/logging"
)

var log = logging.L("notify")

const (
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 64 << 10
)

// Webhook posts form-encoded status updates.
type Webhook struct {
	client   *http.Client
	mu       sync.RWMutex
	config   model.NotifierConfig
	inflight sync.WaitGroup
}

// New creates a Webhook. A nil client uses http.DefaultClient.
func New(config model.NotifierConfig, client *http.Client) *Webhook {
	if client == nil {
		client = http.DefaultClient
	}
	return &Webhook{client: client, config: normalize(config)}
}

// UpdateConfig replaces the endpoint, name and timeout for future sends.
func (webhook *Webhook) UpdateConfig(config model.NotifierConfig) {
	webhook.mu.Lock()
	webhook.config = normalize(config)
	webhook.mu.Unlock()
}

// Config returns the active configuration.
func (webhook *Webhook) Config() model.NotifierConfig {
	webhook.mu.RLock()
	defer webhook.mu.RUnlock()
	return webhook.config
}

// Send posts {name, status} and returns the response body. The response is
// not validated; only transport failures are returned as errors.
func (webhook *Webhook) Send(ctx context.Context, status string) (string, error) {
	config := webhook.Config()
	if !config.Enabled() {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, config.Timeout)
	defer cancel()

	form := url.Values{}
	form.Set("name", config.Name)
	form.Set("status", status)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, config.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := webhook.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read webhook response: %w", err)
	}

	log.Info("webhook response",
		logging.KeyStatus, status,
		"code", resp.StatusCode,
		"body", string(body),
	)
	return string(body), nil
}

// Dispatch sends status in the background. Failures are logged and dropped.
func (webhook *Webhook) Dispatch(status string) {
	if !webhook.Config().Enabled() {
		log.Debug("webhook url not configured, skipping", logging.KeyStatus, status)
		return
	}

	webhook.inflight.Add(1)
	go func() {
		defer webhook.inflight.Done()
		if _, err := webhook.Send(context.Background(), status); err != nil {
			log.Warn("webhook dispatch failed",
				logging.KeyStatus, status,
				logging.KeyError, err,
			)
		}
	}()
}

// Wait blocks until in-flight dispatches finish or ctx is done.
func (webhook *Webhook) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		webhook.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func normalize(config model.NotifierConfig) model.NotifierConfig {
	config.URL = strings.TrimSpace(config.URL)
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	return config
}
