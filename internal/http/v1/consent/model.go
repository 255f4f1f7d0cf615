package consent

import "github.com/primeweb/site/internal/platform/timeutil"

// Consent is a stored choice.
type Consent struct {
	Analytics bool          `json:"analytics" doc:"Analytics cookies allowed"`
	Marketing bool          `json:"marketing" doc:"Marketing cookies allowed"`
	Date      timeutil.Time `json:"date"      doc:"When the choice was made"`
}

// Status tells the page whether to show the banner.
type Status struct {
	ShowBanner    bool     `json:"showBanner"`
	BannerDelayMs int64    `json:"bannerDelayMs,omitempty" doc:"Wait before showing the banner" example:"1500"`
	StorageKey    string   `json:"storageKey"              doc:"Client-side storage key" example:"cookie-consent"`
	Consent       *Consent `json:"consent,omitempty"`
}
