package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LeadProspector/internal/config"
)

func completionServer(t *testing.T, reply string, capture *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var payload struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.Unmarshal(body, &payload))
		require.NotEmpty(t, payload.Messages)
		if capture != nil {
			*capture = payload.Messages[len(payload.Messages)-1].Content
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": reply}},
			},
		})
	}))
}

func testConfig(endpoint string) config.LLMConfig {
	return config.LLMConfig{Endpoint: endpoint, Model: "test-model", APIKey: "key"}
}

func TestCompleteAppendsJSONInstruction(t *testing.T) {
	t.Parallel()

	var prompt string
	server := completionServer(t, `{"ok":true}`, &prompt)
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	reply, err := client.Complete(context.Background(), "Score these articles.")
	require.NoError(t, err)

	assert.Equal(t, `{"ok":true}`, reply)
	assert.Contains(t, prompt, "Return your response in JSON format only")
}

func TestCompleteKeepsExplicitJSONDemand(t *testing.T) {
	t.Parallel()

	var prompt string
	server := completionServer(t, `[]`, &prompt)
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.Complete(context.Background(), "Output only json with these fields.")
	require.NoError(t, err)

	assert.NotContains(t, prompt, "Return your response in JSON format only")
}

func TestCompleteMisconfigured(t *testing.T) {
	t.Parallel()

	client := NewClient(config.LLMConfig{})
	_, err := client.Complete(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "misconfigured")
}

func TestCompleteServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "over quota", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "over quota")
}
