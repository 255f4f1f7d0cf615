package notify

import (
	"context"
	"fmt"

	"github.com/sfreiberg/gotwilio"
)

// TwilioClient is the part of gotwilio.Twilio the notifier uses.
type TwilioClient interface {
	SendSMS(from, to, body, statusCallback, applicationSid string) (*gotwilio.SmsResponse, *gotwilio.Exception, error)
}

// TwilioNotifier texts a lead summary to the agency phone. With whatsApp
// set, both numbers get the "whatsapp:" channel prefix.
type TwilioNotifier struct {
	client TwilioClient
	from   string
	to     string
}

// NewTwilioNotifier builds a notifier around a gotwilio client.
func NewTwilioNotifier(sid, token, from, to string, whatsApp bool) *TwilioNotifier {
	return NewTwilioNotifierWithClient(gotwilio.NewTwilioClient(sid, token), from, to, whatsApp)
}

// NewTwilioNotifierWithClient is NewTwilioNotifier with an injected client.
func NewTwilioNotifierWithClient(client TwilioClient, from, to string, whatsApp bool) *TwilioNotifier {
	if whatsApp {
		from, to = "whatsapp:"+from, "whatsapp:"+to
	}
	return &TwilioNotifier{client: client, from: from, to: to}
}

func (n *TwilioNotifier) Notify(_ context.Context, e Event) error {
	_, exc, err := n.client.SendSMS(n.from, n.to, e.Summary(), "", "")
	if err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}
	if exc != nil {
		return fmt.Errorf("twilio rejected message (status=%d code=%d): %s", exc.Status, exc.Code, exc.Message)
	}
	return nil
}

var _ Notifier = (*TwilioNotifier)(nil)
