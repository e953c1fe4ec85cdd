package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kapu/wiki-answer-bot-go/internal/config"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(apiURL string) *config.Config {
	return &config.Config{
		Wiki: config.WikiConfig{
			APIURL:      apiURL,
			UserAgent:   "wikibot-test",
			HTTPTimeout: 2 * time.Second,
		},
		Resolver: config.ResolverConfig{
			SearchLimit:      8,
			SummarySentences: 2,
			CallTimeout:      time.Second,
			MaxAmbiguity:     3,
			MaxRelated:       2,
		},
		Bot: config.BotConfig{Prefix: "!wiki "},
	}
}

func TestBuildRequiresConfigAndLogger(t *testing.T) {
	_, err := Build(nil, zap.NewNop())
	assert.Error(t, err)

	_, err = Build(testConfig("http://localhost/w/api.php"), nil)
	assert.Error(t, err)
}

func TestContainerConsoleNoResults(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "wikibot-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "search", r.URL.Query().Get("list"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"query": map[string]any{"search": []any{}},
		})
	}))
	defer srv.Close()

	container, err := Build(testConfig(srv.URL), zap.NewNop())
	require.NoError(t, err)

	var out bytes.Buffer
	console := container.NewConsole(strings.NewReader("what is qwxzv\nexit\n"), &out)
	require.NoError(t, console.Run(context.Background()))

	assert.Contains(t, out.String(), "Bot: I couldn't find anything related to that query.")
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(container.Metrics.HTTPRequestsTotal.WithLabelValues("ok")))
}

func TestNewRelayBotValidatesRelayConfig(t *testing.T) {
	container, err := Build(testConfig("http://localhost/w/api.php"), zap.NewNop())
	require.NoError(t, err)

	_, err = container.NewRelayBot()
	assert.Error(t, err)

	container.Config.Relay = config.RelayConfig{
		BaseURL:              "http://localhost:3000",
		WSURL:                "ws://localhost:3000/ws",
		MaxReconnectAttempts: 1,
		ReconnectDelay:       time.Millisecond,
	}
	b, err := container.NewRelayBot()
	require.NoError(t, err)
	assert.NotNil(t, b)
}

func TestTurnBudget(t *testing.T) {
	cfg := testConfig("http://localhost/w/api.php")
	assert.Equal(t, 17*time.Second+2*time.Second, turnBudget(cfg))
}
