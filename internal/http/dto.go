package http

import "nutribot_backend/internal/transport"

// EventRequest is the webhook DTO for one inbound event.
type EventRequest struct {
	SenderID   int64              `json:"sender_id" validate:"required"`
	Username   string             `json:"username,omitempty"`
	FirstName  string             `json:"first_name,omitempty"`
	LastName   string             `json:"last_name,omitempty"`
	Text       string             `json:"text,omitempty"`
	Callback   string             `json:"callback,omitempty"`
	Attachment *AttachmentRequest `json:"attachment,omitempty"`
}

// AttachmentRequest is the webhook DTO for an attachment reference.
type AttachmentRequest struct {
	FileID   string `json:"file_id" validate:"required"`
	MimeType string `json:"mime_type,omitempty"`
	Bytes    []byte `json:"bytes,omitempty"`
}

// ToEvent converts the DTO into the core event type.
func (r EventRequest) ToEvent() transport.InboundEvent {
	ev := transport.InboundEvent{
		SenderID:  r.SenderID,
		Username:  r.Username,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Text:      r.Text,
		Callback:  r.Callback,
	}
	if r.Attachment != nil {
		ev.Attachment = &transport.Attachment{
			FileID:   r.Attachment.FileID,
			MimeType: r.Attachment.MimeType,
			Bytes:    r.Attachment.Bytes,
		}
	}
	return ev
}

// EventResponse is the ordered list of outbound replies.
type EventResponse struct {
	Responses []transport.Response `json:"responses"`
}
