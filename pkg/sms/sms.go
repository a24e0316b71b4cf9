// Package sms delivers plain-text messages through an external SMS
// gateway. Two interchangeable providers are supported; deployment
// configuration selects exactly one.
package sms

import "fmt"

// Provider sends one text message to one normalized phone number.
// Implementations return a *RejectionError when the gateway accepted
// the request but rejected the message (bad destination, filtering);
// any other non-nil error is a transport fault.
type Provider interface {
	Send(to, text string) error
}

// RejectionError is a logical rejection reported by the provider.
// Retrying will not fix it, so callers log it and move on.
type RejectionError struct {
	To     string
	Code   string
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("sms to %s rejected by provider (code %s): %s", e.To, e.Code, e.Reason)
}
