package sms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

const vonageBaseURL = "https://rest.nexmo.com"

// Vonage sends SMS through the Vonage (Nexmo) REST API, authenticated
// with an API key + secret pair.
type Vonage struct {
	apiKey    string
	apiSecret string
	from      string
	baseURL   string
	client    *http.Client
}

func NewVonage(apiKey, apiSecret, from string) *Vonage {
	return &Vonage{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		from:      from,
		baseURL:   vonageBaseURL,
		client:    &http.Client{},
	}
}

type vonageRequest struct {
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
	To        string `json:"to"`
	From      string `json:"from"`
	Text      string `json:"text"`
}

type vonageResponse struct {
	Messages []struct {
		Status    string `json:"status"`
		ErrorText string `json:"error-text"`
	} `json:"messages"`
}

// Send submits one message. The API reports per-message delivery
// status in the body; anything other than status "0" is a rejection.
func (v *Vonage) Send(to, text string) error {
	reqBody := vonageRequest{
		APIKey:    v.apiKey,
		APISecret: v.apiSecret,
		To:        to,
		From:      v.from,
		Text:      text,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	resp, err := v.client.Post(v.baseURL+"/sms/json", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("vonage API error: %s", resp.Status)
	}

	var vr vonageResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if len(vr.Messages) == 0 {
		return fmt.Errorf("vonage API returned no message status")
	}

	if msg := vr.Messages[0]; msg.Status != "0" {
		return &RejectionError{To: to, Code: msg.Status, Reason: msg.ErrorText}
	}

	return nil
}
