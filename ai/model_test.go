package ai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGenerateChefTeaser_ReturnsBareVideoURI(t *testing.T) {
	const apiKey = "SECRET-SERVER-KEY"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, ":predictLongRunning"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"name":"operations/teaser-1","done":true,"response":{"generateVideoResponse":{"generatedSamples":[{"video":{"uri":"https://files.example/v1?alt=media"}}]}}}`)
	}))
	defer srv.Close()

	m, err := newGenAIModel(context.Background(), &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL + "/"},
	})
	require.NoError(t, err)

	uri, err := newTestGateway(m).GenerateChefTeaser(context.Background(), "truffle plating", "16:9")
	require.NoError(t, err)
	assert.Equal(t, "https://files.example/v1?alt=media", uri)
	assert.NotContains(t, uri, apiKey)
}
