// Package admin holds staff-only maintenance endpoints.
package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/primeweb/site/internal/platform/auth"
	applog "github.com/primeweb/site/internal/platform/logging"
	"github.com/primeweb/site/internal/platform/timeutil"
)

// Cleaner deactivates idle conversations.
type Cleaner interface {
	Cleanup(ctx context.Context, maxIdle time.Duration) (int, error)
}

// Register registers admin endpoints. defaultMaxIdle applies when the
// request gives none.
func Register(api huma.API, cleaner Cleaner, defaultMaxIdle time.Duration, now func() time.Time) {
	if now == nil {
		now = time.Now
	}

	huma.Register(api, huma.Operation{
		OperationID: "cleanup-conversations",
		Method:      http.MethodPost,
		Path:        "/admin/conversations/cleanup",
		Summary:     "Deactivate idle conversations",
		Description: "Marks active conversations with no activity for longer than maxIdle as inactive.",
		Tags:        []string{"Admin"},
		Security: []map[string][]string{
			{"bearerAuth": {auth.ScopeAdmin}},
		},
	}, func(ctx context.Context, input *CleanupInput) (*CleanupOutput, error) {
		maxIdle := defaultMaxIdle
		if input.MaxIdle != "" {
			d, err := time.ParseDuration(input.MaxIdle)
			if err != nil || d <= 0 {
				return nil, huma.Error422UnprocessableEntity("maxIdle must be a positive duration such as 24h")
			}
			maxIdle = d
		}

		cutoff := now().UTC().Add(-maxIdle)
		n, err := cleaner.Cleanup(ctx, maxIdle)
		if err != nil {
			applog.LogError(ctx, "conversation cleanup failed", err)
			return nil, huma.Error500InternalServerError("internal error")
		}

		actor := "unknown"
		if staff := auth.StaffFromContext(ctx); staff != nil {
			actor = staff.UID
		}
		applog.LogAuditEvent(ctx, applog.AuditEvent{
			Action:       "cleanup",
			Actor:        actor,
			ResourceType: "conversation",
			Result:       applog.AuditSuccess,
			Details:      map[string]any{"deactivated": n, "maxIdle": maxIdle.String()},
		})
		return &CleanupOutput{Body: CleanupResult{Deactivated: n, Cutoff: timeutil.NewTime(cutoff)}}, nil
	})
}
