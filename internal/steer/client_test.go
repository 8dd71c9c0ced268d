package steer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriSteer/internal/apperr"
	"github.com/Rorical/RoriSteer/internal/httpapi"
	"github.com/Rorical/RoriSteer/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(httpapi.New(apperr.ServiceSteer, "key", nil, nil), server.URL, "gemma-2-9b-it", nil)
}

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func helloRequest(t *testing.T) Request {
	t.Helper()
	req, err := Compose([]models.SelectedFeature{
		{Description: "cats", Layer: "9-gemmascope-res-131k", Index: 62610, Strength: 48},
	}, "Hello", models.DefaultGenerationSettings())
	require.NoError(t, err)
	return req
}

func TestSendPayloadShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var got map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		assert.Equal(t, "gemma-2-9b-it", got["modelId"])
		assert.Equal(t, []any{map[string]any{"role": "user", "content": "Hello"}}, got["defaultChatMessages"])
		assert.Equal(t, []any{map[string]any{"role": "user", "content": "Hello"}}, got["steeredChatMessages"])
		assert.Equal(t, []any{map[string]any{
			"modelId":  "gemma-2-9b-it",
			"layer":    "9-gemmascope-res-131k",
			"index":    float64(62610),
			"strength": float64(48),
		}}, got["features"])
		assert.Equal(t, 0.5, got["temperature"])
		assert.Equal(t, float64(48), got["n_tokens"])
		assert.Equal(t, float64(2), got["freq_penalty"])
		assert.Equal(t, float64(16), got["seed"])
		assert.Equal(t, float64(4), got["strength_multiplier"])
		assert.Equal(t, true, got["steer_special_tokens"])

		w.Write([]byte(`{"DEFAULT": {"chat_template": []}, "STEERED": {"chat_template": []}}`))
	})

	_, err := client.Send(context.Background(), helloRequest(t))
	require.NoError(t, err)
}

func TestSendExtractsLastModelTurns(t *testing.T) {
	client := newTestClient(t, respond(`{
		"DEFAULT": {"chat_template": [{"role": "user", "content": "Hello"}, {"role": "model", "content": "Hi there"}]},
		"STEERED": {"chat_template": [{"role": "user", "content": "Hello"}, {"role": "model", "content": "Meow"}]}
	}`))

	reply, err := client.Send(context.Background(), helloRequest(t))
	require.NoError(t, err)
	assert.Equal(t, Reply{DefaultText: "Hi there", SteeredText: "Meow"}, reply)
}

func TestSendFallbacks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Reply
	}{
		{
			name: "empty default",
			body: `{"DEFAULT": {"chat_template": []}, "STEERED": {"chat_template": [{"role": "model", "content": "ok"}]}}`,
			want: Reply{DefaultText: NoResponse, SteeredText: "ok"},
		},
		{
			name: "missing steered",
			body: `{"DEFAULT": {"chat_template": [{"role": "model", "content": "plain"}]}}`,
			want: Reply{DefaultText: "plain", SteeredText: NoResponse},
		},
		{
			name: "last turn not model",
			body: `{"DEFAULT": {"chat_template": [{"role": "user", "content": "Hello"}]}, "STEERED": {}}`,
			want: Reply{DefaultText: NoResponse, SteeredText: NoResponse},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := newTestClient(t, respond(tt.body)).Send(context.Background(), helloRequest(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, reply)
		})
	}
}

func TestSendParseErrors(t *testing.T) {
	for _, body := range []string{`{}`, `{"DEFAULT": null, "STEERED": null}`, `<html>`, `{"DEFAULT": {"chat_template": "x"}}`} {
		_, err := newTestClient(t, respond(body)).Send(context.Background(), helloRequest(t))
		assert.True(t, apperr.IsParse(err, apperr.ServiceSteer), body)
	}
}

func TestSendUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"model overloaded"}`, http.StatusServiceUnavailable)
	})

	_, err := client.Send(context.Background(), helloRequest(t))
	assert.True(t, apperr.IsUnavailable(err, apperr.ServiceSteer))
	assert.Contains(t, err.Error(), "model overloaded")
}
