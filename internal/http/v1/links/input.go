package links

import "time"

// WhatsAppInput for GET /links/whatsapp
type WhatsAppInput struct {
	Text string `query:"text" maxLength:"2000" doc:"Pre-filled message; the site default when empty" example:"Hola, quiero una web"`
}

// CalendarInput for GET /links/calendar
type CalendarInput struct {
	Title    string    `query:"title"    maxLength:"200"  doc:"Event title; defaults to a call with the team"`
	Details  string    `query:"details"  maxLength:"2000" doc:"Event description"`
	Location string    `query:"location" maxLength:"200"  doc:"Event location"`
	Start    time.Time `query:"start"    required:"true"  doc:"Start time (RFC 3339)" example:"2024-06-03T10:00:00Z"`
	End      time.Time `query:"end"                       doc:"End time (RFC 3339); one hour after start when omitted"`
}
