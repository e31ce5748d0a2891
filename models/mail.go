package models

// Mail is one outgoing transactional message. Text is required, HTML is
// optional.
type Mail struct {
	To      string
	Subject string
	Text    string
	HTML    string
}
