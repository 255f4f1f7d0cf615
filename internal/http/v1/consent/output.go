package consent

import "net/http"

// StatusOutput for GET /consent
type StatusOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie" doc:"Visitor cookie, sent when missing"`
	Body      Status
}

// SaveOutput for PUT /consent
type SaveOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie" doc:"Visitor cookie, sent when missing"`
	Body      Consent
}
