package sms

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVonage_Send_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sms/json", r.URL.Path)

		var req vonageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "84356496966", req.To)
		assert.Equal(t, "key", req.APIKey)

		_ = json.NewEncoder(w).Encode(vonageResponse{
			Messages: []struct {
				Status    string `json:"status"`
				ErrorText string `json:"error-text"`
			}{{Status: "0"}},
		})
	}))
	defer srv.Close()

	v := NewVonage("key", "secret", "AlertService")
	v.baseURL = srv.URL

	assert.NoError(t, v.Send("84356496966", "Flood Warning: Evacuate now"))
}

func TestVonage_Send_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"messages":[{"status":"6","error-text":"Unroutable Destination"}]}`))
	}))
	defer srv.Close()

	v := NewVonage("key", "secret", "AlertService")
	v.baseURL = srv.URL

	err := v.Send("84000", "text")
	require.Error(t, err)

	var rej *RejectionError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "6", rej.Code)
	assert.Equal(t, "Unroutable Destination", rej.Reason)
}

func TestVonage_Send_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	v := NewVonage("key", "secret", "AlertService")
	v.baseURL = srv.URL

	err := v.Send("84356496966", "text")
	require.Error(t, err)

	var rej *RejectionError
	assert.False(t, errors.As(err, &rej), "a gateway fault must not look like a rejection")
}

func TestTwilio_Send_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", r.URL.Path)

		sid, token, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "AC123", sid)
		assert.Equal(t, "token", token)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "+84356496966", r.PostForm.Get("To"))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM1"}`))
	}))
	defer srv.Close()

	tw := NewTwilio("AC123", "token", "+15005550006")
	tw.baseURL = srv.URL

	assert.NoError(t, tw.Send("84356496966", "Flood Warning: Evacuate now"))
}

func TestTwilio_Send_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":21211,"message":"The 'To' number is not a valid phone number.","status":400}`))
	}))
	defer srv.Close()

	tw := NewTwilio("AC123", "token", "+15005550006")
	tw.baseURL = srv.URL

	err := tw.Send("84000", "text")
	require.Error(t, err)

	var rej *RejectionError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "21211", rej.Code)
}

func TestTwilio_Send_AuthFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tw := NewTwilio("AC123", "bad-token", "+15005550006")
	tw.baseURL = srv.URL

	err := tw.Send("84356496966", "text")
	require.Error(t, err)

	var rej *RejectionError
	assert.False(t, errors.As(err, &rej), "auth failure affects the whole batch and must escalate")
}
