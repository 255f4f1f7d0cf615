package respond

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/primeweb/site/internal/platform/validate"
)

// Invalid turns a *validate.Errors into a 422 problem with one detail per
// field. Other errors become a plain 422.
func Invalid(err error) error {
	var verr *validate.Errors
	if !errors.As(err, &verr) {
		return huma.Error422UnprocessableEntity(err.Error())
	}
	details := make([]error, 0, len(verr.Issues))
	for _, is := range verr.Issues {
		details = append(details, &huma.ErrorDetail{
			Location: "body." + is.Field,
			Message:  is.Message,
		})
	}
	return huma.Error422UnprocessableEntity("validation failed", details...)
}

// BadGateway is a 502 problem telling the client when to retry.
func BadGateway(detail, retryAfter string) error {
	return huma.ErrorWithHeaders(
		huma.Error502BadGateway(detail),
		http.Header{"Retry-After": {retryAfter}},
	)
}
