package auth

import (
	"context"
)

// MockVerifier stands in for Firebase in handler tests. With Tokens set,
// only those tokens verify; otherwise every token maps to Staff.
type MockVerifier struct {
	Staff  *Staff
	Tokens map[string]*Staff
	Error  error
}

func (m *MockVerifier) Verify(_ context.Context, token string) (*Staff, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	if m.Tokens != nil {
		staff, ok := m.Tokens[token]
		if !ok {
			return nil, ErrInvalidToken
		}
		return staff, nil
	}
	return m.Staff, nil
}

// TestAdmin is a verified staff member holding the admin claim.
func TestAdmin() *Staff {
	return &Staff{UID: "admin-123", Email: "admin@primeweb.es", EmailVerified: true, Admin: true}
}

// TestEditor is verified staff without admin scope.
func TestEditor() *Staff {
	return &Staff{UID: "editor-456", Email: "editor@primeweb.es", EmailVerified: true}
}

var _ Verifier = (*MockVerifier)(nil)
