package email

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordResetMessage(t *testing.T) {
	msg, err := NewPasswordResetMessage("a@x.com", "<alice>", "123456")
	require.NoError(t, err)

	assert.Equal(t, "Password Reset OTP", msg.Subject)
	assert.Contains(t, msg.TextBody, "123456")
	assert.Contains(t, msg.HTMLBody, "<strong>123456</strong>")
	assert.Contains(t, msg.HTMLBody, "&lt;alice&gt;")
}

func TestLogProviderDoesNotFail(t *testing.T) {
	var buf bytes.Buffer
	svc := NewEmailService(Config{Provider: "log"}, zerolog.New(&buf))

	require.NoError(t, svc.SendPasswordResetOTP(context.Background(), "a@x.com", "alice", "654321"))
	assert.Contains(t, buf.String(), "654321")
}

func TestSendgridProvider(t *testing.T) {
	var got map[string]interface{}
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	svc := NewEmailService(Config{
		Provider:       "sendgrid",
		SendgridAPIKey: "SG.key",
		SendgridHost:   srv.URL,
		FromName:       "TU Chat",
		FromEmail:      "no-reply@tuchat.app",
	}, zerolog.Nop())

	require.NoError(t, svc.SendPasswordResetOTP(context.Background(), "a@x.com", "alice", "111222"))
	assert.Equal(t, "Bearer SG.key", auth)
	require.NotNil(t, got)
	from := got["from"].(map[string]interface{})
	assert.Equal(t, "no-reply@tuchat.app", from["email"])
}

func TestSendgridProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer srv.Close()

	svc := NewEmailService(Config{Provider: "sendgrid", SendgridAPIKey: "x", SendgridHost: srv.URL}, zerolog.Nop())
	assert.Error(t, svc.SendPasswordResetOTP(context.Background(), "a@x.com", "alice", "111222"))
}
