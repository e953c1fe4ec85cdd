package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kapu/wiki-answer-bot-go/pkg/errors"
	"go.uber.org/zap"
)

const replyTypeText = "text"

// Client posts replies back to the chat relay over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// SendMessage posts a text reply to room.
func (c *Client) SendMessage(ctx context.Context, room, message string) error {
	req := ReplyRequest{
		Type: replyTypeText,
		Room: room,
		Data: message,
	}

	if err := c.post(ctx, "/reply", req); err != nil {
		c.logger.Error("Failed to send reply",
			zap.Error(err),
			zap.String("room", room),
		)
		return err
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	url := c.baseURL + path

	payload, err := json.Marshal(body)
	if err != nil {
		return errors.NewAPIError("failed to marshal request", 400, map[string]any{
			"url": url,
		}).WithCause(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errors.NewAPIError("failed to create request", 500, map[string]any{
			"url": url,
		}).WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewAPIError("request failed", 500, map[string]any{
			"url": url,
		}).WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return errors.NewAPIError(
			fmt.Sprintf("relay API error: %s", resp.Status),
			resp.StatusCode,
			map[string]any{
				"url":  url,
				"body": string(bodyBytes),
			},
		)
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
