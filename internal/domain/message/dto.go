package message

// SendRequest sends one SMS to an arbitrary number.
type SendRequest struct {
	Recipient string `json:"recipient" validate:"required,min=7,max=20"`
	Body      string `json:"body" validate:"required,max=640"`
}

// ReminderRequest messages every member expiring within the window.
type ReminderRequest struct {
	Days int    `json:"days" validate:"required,min=1,max=90"`
	Body string `json:"body" validate:"required,max=640"`
}
