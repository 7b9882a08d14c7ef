package mail

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAPIMailerSend(t *testing.T) {
	var gotAuth, gotContentType string
	var gotPayload map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotPayload)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	mailer := NewAPIMailer("key-123", server.URL, "no-reply@secondwatch.network")
	err := mailer.Send("crew@example.com", "Receipt approved", "Your gas receipt was approved.")
	require.NoError(t, err)

	assert.Equal(t, "Bearer key-123", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "no-reply@secondwatch.network", gotPayload["from"])
	assert.Equal(t, []interface{}{"crew@example.com"}, gotPayload["to"])
	assert.Equal(t, "Receipt approved", gotPayload["subject"])
	assert.Equal(t, "Your gas receipt was approved.", gotPayload["text"])
}

func TestAPIMailerSendConfirmationCode(t *testing.T) {
	var gotPayload map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotPayload)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	mailer := NewAPIMailer("key-123", server.URL, "no-reply@secondwatch.network")
	err := mailer.SendConfirmationCode("new@example.com", "Jordan", "482913")
	require.NoError(t, err)

	assert.Equal(t, "Confirm your account", gotPayload["subject"])
	assert.Contains(t, gotPayload["text"], "Jordan")
	assert.Contains(t, gotPayload["text"], "482913")
}

func TestAPIMailerGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"invalid recipient"}`))
	}))
	defer server.Close()

	mailer := NewAPIMailer("key-123", server.URL, "no-reply@secondwatch.network")
	err := mailer.Send("bad", "subject", "body")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "invalid recipient")
}

func TestLogMailerNeverFails(t *testing.T) {
	mailer := NewLogMailer(zap.NewNop())

	assert.NoError(t, mailer.SendConfirmationCode("a@example.com", "A", "123456"))
	assert.NoError(t, mailer.Send("a@example.com", "subject", "body"))
}
