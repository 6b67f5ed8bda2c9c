package printer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const rawMediaType = "application/octet-stream"

var ErrBridgeBusy = errors.New("print bridge busy")

type BridgeError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *BridgeError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("print bridge error: %s", e.Status)
	}
	return fmt.Sprintf("print bridge error: %s: %s", e.Status, e.Body)
}

// HTTPBridge posts raw ESC/POS chunks to a network print bridge (a small
// relay next to the Bluetooth or USB printer).
type HTTPBridge struct {
	http   *resty.Client
	url    string
	logger *zap.Logger
}

func NewHTTPBridge(url string, timeout time.Duration, logger *zap.Logger) *HTTPBridge {
	httpClient := resty.New().
		SetHeader("Content-Type", rawMediaType).
		SetTimeout(timeout).
		SetRetryCount(1).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(1 * time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp != nil && resp.StatusCode() == http.StatusTooManyRequests
		})

	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPBridge{
		http:   httpClient,
		url:    strings.TrimSpace(url),
		logger: logger.Named("bridge"),
	}
}

func (b *HTTPBridge) Name() string { return "http:" + b.url }

func (b *HTTPBridge) Send(ctx context.Context, chunk []byte) error {
	resp, err := b.http.R().SetContext(ctx).SetBody(chunk).Post(b.url)
	if err != nil {
		return fmt.Errorf("print bridge request: %w", err)
	}
	if resp.IsError() {
		return bridgeErrorFromResponse(resp)
	}
	b.logger.Debug("chunk sent", zap.Int("bytes", len(chunk)), zap.Int("status", resp.StatusCode()))
	return nil
}

func bridgeErrorFromResponse(resp *resty.Response) error {
	bridgeErr := &BridgeError{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Body:       strings.TrimSpace(resp.String()),
	}
	if resp.StatusCode() == http.StatusTooManyRequests || resp.StatusCode() == http.StatusServiceUnavailable {
		return fmt.Errorf("%w: %s", ErrBridgeBusy, bridgeErr.Error())
	}
	return bridgeErr
}
