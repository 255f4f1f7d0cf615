package admin

// CleanupInput for POST /admin/conversations/cleanup
type CleanupInput struct {
	MaxIdle string `query:"maxIdle" doc:"Go duration; conversations idle longer are deactivated. Defaults to the configured chat.max_idle" example:"24h"`
}
