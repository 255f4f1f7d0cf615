package links

// Link is a ready-to-open URL.
type Link struct {
	URL string `json:"url" doc:"Deep link"`
}

// BookingLink adds the appointment page to a calendar link.
type BookingLink struct {
	URL        string `json:"url"        doc:"Add-to-calendar link"`
	BookingURL string `json:"bookingUrl" doc:"Appointment scheduling page"`
}

// LinkOutput for GET /links/whatsapp
type LinkOutput struct {
	Body Link
}

// BookingLinkOutput for GET /links/calendar
type BookingLinkOutput struct {
	Body BookingLink
}
