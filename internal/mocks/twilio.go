// Package mocks holds testify mocks for third-party clients.
package mocks

import (
	"github.com/sfreiberg/gotwilio"
	"github.com/stretchr/testify/mock"
)

// TwilioClientMock is a mock for the gotwilio client.
type TwilioClientMock struct {
	mock.Mock
}

// SendSMS records the call and returns the configured exception and error.
func (m *TwilioClientMock) SendSMS(from, to, body, statusCallback, applicationSid string) (*gotwilio.SmsResponse, *gotwilio.Exception, error) {
	args := m.Called(from, to, body, statusCallback, applicationSid)
	var exc *gotwilio.Exception
	if v := args.Get(0); v != nil {
		exc = v.(*gotwilio.Exception)
	}
	return nil, exc, args.Error(1)
}
