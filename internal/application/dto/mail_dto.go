package dto

// SendMailRequest body para POST /api/mail.
type SendMailRequest struct {
	To      string `json:"to"`
	From    string `json:"from,omitempty"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}
