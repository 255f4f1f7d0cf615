// Package auth verifies Firebase ID tokens for the staff-only endpoints.
package auth

import (
	"context"
	"errors"
	"slices"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// AdminClaim is the Firebase custom claim that grants admin scope.
const AdminClaim = "admin"

// ScopeAdmin is the operation security scope that requires an admin.
const ScopeAdmin = "admin"

// Staff is an authenticated team member.
type Staff struct {
	UID           string
	Email         string
	EmailVerified bool
	Admin         bool
}

// Error types for authentication failures.
var (
	ErrNoToken      = errors.New("missing authorization header")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")
	ErrUserDisabled = errors.New("user disabled")

	// ErrCertificateFetch means Google's public keys could not be fetched; it maps to 503.
	ErrCertificateFetch = errors.New("failed to fetch certificates")
)

// Verifier validates tokens and returns the staff member behind them.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Staff, error)
}

// FirebaseVerifier implements Verifier using the Firebase Admin SDK.
type FirebaseVerifier struct {
	client      *fbauth.Client
	adminEmails []string
}

// NewFirebaseVerifier creates a verifier. Verified emails in adminEmails
// get admin scope even without the custom claim.
func NewFirebaseVerifier(client *fbauth.Client, adminEmails ...string) *FirebaseVerifier {
	normalized := make([]string, 0, len(adminEmails))
	for _, e := range adminEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			normalized = append(normalized, e)
		}
	}
	return &FirebaseVerifier{client: client, adminEmails: normalized}
}

// Verify validates a Firebase ID token and checks for revocation.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*Staff, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		switch {
		case fbauth.IsCertificateFetchFailed(err):
			return nil, ErrCertificateFetch
		case fbauth.IsIDTokenExpired(err):
			return nil, ErrTokenExpired
		case fbauth.IsIDTokenRevoked(err):
			return nil, ErrTokenRevoked
		case fbauth.IsUserDisabled(err):
			return nil, ErrUserDisabled
		default:
			return nil, ErrInvalidToken
		}
	}
	return v.staffFromClaims(token.UID, token.Claims), nil
}

func (v *FirebaseVerifier) staffFromClaims(uid string, claims map[string]any) *Staff {
	email, _ := claims["email"].(string)
	verified, _ := claims["email_verified"].(bool)
	admin, _ := claims[AdminClaim].(bool)
	if !admin && verified {
		admin = slices.Contains(v.adminEmails, strings.ToLower(email))
	}
	return &Staff{UID: uid, Email: email, EmailVerified: verified, Admin: admin}
}

// ExtractBearerToken extracts the token from an Authorization header.
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrNoToken
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", ErrInvalidToken
	}
	return parts[1], nil
}

var _ Verifier = (*FirebaseVerifier)(nil)
