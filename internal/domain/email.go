package domain

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// TicketEmailData holds data for the check-in ticket email.
type TicketEmailData struct {
	Name        string
	EventName   string
	EventVenue  string
	EventDate   string
	Token       string
	QRImageB64  string // base64-encoded PNG, embedded inline in the HTML body
	CouponCount int
}
