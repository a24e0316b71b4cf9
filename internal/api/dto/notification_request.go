package dto

import "github.com/vku-onelove/alert-notifier/internal/model"

// NotificationChannels selects the delivery channels for one recipient.
type NotificationChannels struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
}

// Recipient is one notification target in the inbound request.
type Recipient struct {
	Email                string               `json:"email" validate:"required,email"`
	Phone                string               `json:"phone" validate:"required"`
	NotificationChannels NotificationChannels `json:"notification_channels"`
}

// NotificationRequest is the JSON body of POST /api/notifications.
type NotificationRequest struct {
	Type       string      `json:"type" validate:"required,oneof=emergency_alert"`
	Title      string      `json:"title" validate:"required,min=1,max=200"`
	Content    string      `json:"content" validate:"required,min=1,max=1000"`
	Recipients []Recipient `json:"recipients" validate:"dive"`
}

// ToModel converts the validated request into the core model.
func (r NotificationRequest) ToModel() model.NotificationRequest {
	recipients := make([]model.Recipient, 0, len(r.Recipients))
	for _, rcpt := range r.Recipients {
		recipients = append(recipients, model.Recipient{
			Email: rcpt.Email,
			Phone: rcpt.Phone,
			Channels: model.Channels{
				Email: rcpt.NotificationChannels.Email,
				SMS:   rcpt.NotificationChannels.SMS,
			},
		})
	}

	return model.NotificationRequest{
		Type:       r.Type,
		Title:      r.Title,
		Content:    r.Content,
		Recipients: recipients,
	}
}

// CreateResponse is the 200 body of POST /api/notifications.
type CreateResponse struct {
	Message string              `json:"message"`
	Stats   model.DispatchStats `json:"stats"`
}
