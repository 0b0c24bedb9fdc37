// Package transport defines the inbound event and outbound response types
// exchanged with the messaging transport collaborator. The wire encoding
// beyond these shapes is owned by the transport, not by this core.
package transport

// Attachment is an opaque reference to a file carried by an inbound event.
// Bytes may be absent when the transport only forwards a file reference.
type Attachment struct {
	FileID   string `json:"file_id" binding:"required"`
	MimeType string `json:"mime_type,omitempty"`
	Bytes    []byte `json:"bytes,omitempty"`
}

// InboundEvent is one discrete user interaction: a text reply, a button tap
// (callback token) or an attachment, always carrying the external sender id.
type InboundEvent struct {
	SenderID   int64       `json:"sender_id" binding:"required"`
	Username   string      `json:"username,omitempty"`
	FirstName  string      `json:"first_name,omitempty"`
	LastName   string      `json:"last_name,omitempty"`
	Text       string      `json:"text,omitempty"`
	Callback   string      `json:"callback,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// IsCallback reports whether the event is a button tap.
func (e InboundEvent) IsCallback() bool {
	return e.Callback != ""
}

// Input returns the textual payload of the event: the callback token when
// present, the message text otherwise.
func (e InboundEvent) Input() string {
	if e.Callback != "" {
		return e.Callback
	}
	return e.Text
}

// Button is one keyboard entry: a localized label plus the opaque token the
// transport sends back when it is tapped.
type Button struct {
	Label string `json:"label"`
	Token string `json:"token"`
}

// Response is a single outbound message; Keyboard rows are ordered.
type Response struct {
	Text     string     `json:"text"`
	Keyboard [][]Button `json:"keyboard,omitempty"`
}

// Text builds a plain text response.
func Text(text string) Response {
	return Response{Text: text}
}

// WithKeyboard builds a response with a keyboard attached.
func WithKeyboard(text string, rows [][]Button) Response {
	return Response{Text: text, Keyboard: rows}
}
