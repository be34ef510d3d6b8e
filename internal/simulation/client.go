package simulation

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"obr-forecast/internal/model"
)

const (
	calculateEndpoint = "/calculate"
	contentType       = "application/json"

	defaultTimeout = 30 * time.Second
)

// Client calls a remote simulation engine over HTTP.
type Client struct {
	baseURL string
	retry   *retryablehttp.Client
}

type Options struct {
	BaseURL string
	Timeout time.Duration
	// RetryMax is the number of transport-level retries. 0 means a
	// single attempt.
	RetryMax int
	Logger   *slog.Logger
}

func NewClient(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{Timeout: opts.Timeout}
	rc.RetryMax = opts.RetryMax
	rc.Logger = nil
	if opts.Logger != nil {
		rc.Logger = &retryLogger{logger: opts.Logger}
	}

	return &Client{baseURL: opts.BaseURL, retry: rc}
}

type calculateRequest struct {
	Situation *model.Situation `json:"situation"`
	Reform    Reform           `json:"reform"`
	Variable  string           `json:"variable"`
	Year      int              `json:"year"`
}

type calculateResponse struct {
	Result float64 `json:"result"`
}

func (c *Client) Calculate(ctx context.Context, situation *model.Situation, reform Reform, year int) (float64, error) {
	body, err := json.Marshal(calculateRequest{
		Situation: situation,
		Reform:    reform,
		Variable:  VariableNetIncome,
		Year:      year,
	})
	if err != nil {
		return 0, errors.Wrap(err, "marshal calculate request")
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+calculateEndpoint, body)
	if err != nil {
		return 0, errors.Wrap(err, "build calculate request")
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", contentType)

	resp, err := c.retry.Do(req)
	if err != nil {
		return 0, errors.Wrapf(ErrEngine, "post calculate: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return 0, errors.Wrapf(ErrEngine, "engine returned status %d", resp.StatusCode)
	}

	var cr calculateResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return 0, errors.Wrapf(ErrEngine, "decode engine response: %v", err)
	}
	return cr.Result, nil
}

// retryLogger adapts slog to retryablehttp's leveled logger.
type retryLogger struct {
	logger *slog.Logger
}

func (l *retryLogger) Error(msg string, kv ...interface{}) { l.logger.Error(msg, kv...) }
func (l *retryLogger) Info(msg string, kv ...interface{})  { l.logger.Info(msg, kv...) }
func (l *retryLogger) Debug(msg string, kv ...interface{}) { l.logger.Debug(msg, kv...) }
func (l *retryLogger) Warn(msg string, kv ...interface{})  { l.logger.Warn(msg, kv...) }
