package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEmailJSSender_Send(t *testing.T) {
	var got emailJSRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	sender := NewEmailJSSender(EmailJSConfig{
		Endpoint:   srv.URL,
		ServiceID:  "service_1",
		TemplateID: "template_1",
		PublicKey:  "public",
		PrivateKey: "private",
	})
	defer sender.Close()

	err := sender.Send(context.Background(), Params{"from_name": "Asha", "message": "Hello"})
	require.NoError(t, err)

	assert.Equal(t, "service_1", got.ServiceID)
	assert.Equal(t, "template_1", got.TemplateID)
	assert.Equal(t, "public", got.UserID)
	assert.Equal(t, "private", got.AccessToken)
	assert.Equal(t, "Asha", got.TemplateParams["from_name"])
}

func TestEmailJSSender_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "The template ID is invalid", http.StatusBadRequest)
	}))
	defer srv.Close()

	sender := NewEmailJSSender(EmailJSConfig{Endpoint: srv.URL, ServiceID: "s", TemplateID: "t", PublicKey: "p"})
	defer sender.Close()

	err := sender.Send(context.Background(), Params{})
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "template ID is invalid")
}

func TestEmailJSSender_NotConfigured(t *testing.T) {
	sender := NewEmailJSSender(EmailJSConfig{ServiceID: "s"})
	defer sender.Close()

	assert.ErrorIs(t, sender.Send(context.Background(), Params{}), ErrNotConfigured)
}

func TestEmailJSSender_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	sender := NewEmailJSSender(EmailJSConfig{Endpoint: srv.URL, ServiceID: "s", TemplateID: "t", PublicKey: "p"})
	defer sender.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, sender.Send(ctx, Params{}), context.Canceled)
}

func TestSenderFunc(t *testing.T) {
	var called Params
	s := SenderFunc(func(ctx context.Context, p Params) error {
		called = p
		return nil
	})

	require.NoError(t, s.Send(context.Background(), Params{"k": "v"}))
	assert.Equal(t, "v", called["k"])
}
