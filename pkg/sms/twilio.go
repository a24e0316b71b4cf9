package sms

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const twilioBaseURL = "https://api.twilio.com"

// Twilio sends SMS through the Twilio messages API, authenticated with
// an account SID + auth token pair.
type Twilio struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	client     *http.Client
}

func NewTwilio(accountSID, authToken, from string) *Twilio {
	return &Twilio{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		baseURL:    twilioBaseURL,
		client:     &http.Client{},
	}
}

type twilioError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Send submits one message. Twilio answers 4xx with an error code when
// it rejects the message itself (e.g. an invalid destination); that is
// reported as a rejection, everything else as a transport fault.
func (t *Twilio) Send(to, text string) error {
	form := url.Values{}
	form.Set("To", "+"+to)
	form.Set("From", t.from)
	form.Set("Body", text)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", t.baseURL, t.accountSID)

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusUnauthorized {
		var te twilioError
		if err := json.NewDecoder(resp.Body).Decode(&te); err != nil {
			return &RejectionError{To: to, Code: resp.Status, Reason: "unparseable error body"}
		}

		return &RejectionError{To: to, Code: strconv.Itoa(te.Code), Reason: te.Message}
	}

	return fmt.Errorf("twilio API error: %s", resp.Status)
}
