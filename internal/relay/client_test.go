package relay

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kapu/wiki-answer-bot-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClientSendMessagePostsReply(t *testing.T) {
	var got ReplyRequest
	var method, path, contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path, contentType = r.Method, r.URL.Path, r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop())
	require.NoError(t, client.SendMessage(context.Background(), "room-7", "Topic: Mount Everest"))

	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/reply", path)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, ReplyRequest{Type: "text", Room: "room-7", Data: "Topic: Mount Everest"}, got)
}

func TestClientSendMessageReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "room closed", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, nil).SendMessage(context.Background(), "r", "m")
	require.Error(t, err)

	var apiErr *errors.APIError
	require.True(t, stderrors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}
