package admin

import "github.com/primeweb/site/internal/platform/timeutil"

// CleanupResult reports a cleanup run.
type CleanupResult struct {
	Deactivated int           `json:"deactivated" doc:"Conversations marked inactive" example:"3"`
	Cutoff      timeutil.Time `json:"cutoff"      doc:"Conversations last updated before this were affected"`
}

// CleanupOutput for POST /admin/conversations/cleanup
type CleanupOutput struct {
	Body CleanupResult
}
