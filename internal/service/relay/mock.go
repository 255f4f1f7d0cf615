package relay

import (
	"context"
	"maps"
	"sync"
)

// MockSubmitter records submissions in memory. Failures are queued with
// FailNext and consumed one per Submit call, or forced with SetErr.
type MockSubmitter struct {
	mu          sync.Mutex
	submissions []Submission
	queued      []error
	err         error
}

// NewMockSubmitter returns a submitter that accepts everything.
func NewMockSubmitter() *MockSubmitter {
	return &MockSubmitter{}
}

// Submit records s unless a failure is pending.
func (m *MockSubmitter) Submit(ctx context.Context, s Submission) error {
	if err := ctx.Err(); err != nil {
		return &UpstreamError{cause: err}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queued) > 0 {
		err := m.queued[0]
		m.queued = m.queued[1:]
		return err
	}
	if m.err != nil {
		return m.err
	}
	s.Fields = maps.Clone(s.Fields)
	m.submissions = append(m.submissions, s)
	return nil
}

// FailNext makes the next n submissions fail with an upstream status.
func (m *MockSubmitter) FailNext(n, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for range n {
		m.queued = append(m.queued, &UpstreamError{Status: status})
	}
}

// SetErr makes every submission fail with err until reset with nil.
func (m *MockSubmitter) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Submissions returns a copy of what was accepted so far.
func (m *MockSubmitter) Submissions() []Submission {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Submission, len(m.submissions))
	copy(out, m.submissions)
	return out
}

var _ Submitter = (*MockSubmitter)(nil)
