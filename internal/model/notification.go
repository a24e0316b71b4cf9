package model

import (
	"time"

	"github.com/google/uuid"
)

// Channel is a notification delivery medium.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// TypeEmergencyAlert is the only notification type currently accepted.
// The field is a discriminator for future types, not free-form routing.
const TypeEmergencyAlert = "emergency_alert"

// Job statuses.
const (
	StatusPending   = "pending"
	StatusRetrying  = "retrying"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Channels holds the per-recipient channel selection.
type Channels struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
}

// Recipient is one target of a notification. Phone is kept in its raw
// input form and normalized at send time.
type Recipient struct {
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Channels Channels `json:"notification_channels"`
}

// NotificationRequest is a validated inbound notification.
type NotificationRequest struct {
	Type       string      `json:"type"`
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	Recipients []Recipient `json:"recipients"`
}

// DispatchStats reports how many recipients were enqueued per channel.
type DispatchStats struct {
	EmailRecipients int `json:"email_recipients"`
	SMSRecipients   int `json:"sms_recipients"`
}

// Job is the persisted record of one bulk dispatch job: all recipients
// of one channel for one request.
type Job struct {
	ID             uuid.UUID `json:"id"`
	Channel        Channel   `json:"channel"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	RecipientCount int       `json:"recipient_count"`
	Attempt        int       `json:"attempt"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
