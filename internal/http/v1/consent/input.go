package consent

// StatusInput for GET /consent (the visitor comes from the cookie).
type StatusInput struct{}

// SaveInput for PUT /consent
type SaveInput struct {
	Body struct {
		Choice    string `json:"choice"              enum:"all,essential,custom" doc:"Banner button pressed"`
		Analytics bool   `json:"analytics,omitempty" doc:"Only read for custom"`
		Marketing bool   `json:"marketing,omitempty" doc:"Only read for custom"`
	}
}
