package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/sfreiberg/gotwilio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/primeweb/site/internal/mocks"
)

var testEvent = Event{
	Kind:         KindWizardLead,
	Source:       "Asistente de Chat - PRIME WEB",
	SubmissionID: "sub-1",
	Fields:       map[string]string{"name": "Ana", "email": "ana@x.com", "phone": ""},
	At:           time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
}

type fakeSNS struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNS) PublishWithContext(_ aws.Context, in *sns.PublishInput, _ ...request.Option) (*sns.PublishOutput, error) {
	f.input = in
	return &sns.PublishOutput{}, f.err
}

func TestSNSNotifierPublishesFeed(t *testing.T) {
	fake := &fakeSNS{}
	n := &SNSNotifier{client: fake, topicARN: "arn:aws:sns:eu-west-1:1:leads"}

	require.NoError(t, n.Notify(context.Background(), testEvent))

	require.NotNil(t, fake.input)
	assert.Equal(t, "arn:aws:sns:eu-west-1:1:leads", aws.StringValue(fake.input.TopicArn))
	assert.Equal(t, KindWizardLead, aws.StringValue(fake.input.MessageAttributes["feed"].StringValue))

	var decoded Event
	require.NoError(t, json.Unmarshal([]byte(aws.StringValue(fake.input.Message)), &decoded))
	assert.Equal(t, "sub-1", decoded.SubmissionID)
	assert.Equal(t, "Ana", decoded.Fields["name"])
}

func TestSNSNotifierWrapsError(t *testing.T) {
	boom := errors.New("throttled")
	n := &SNSNotifier{client: &fakeSNS{err: boom}, topicARN: "arn"}
	assert.ErrorIs(t, n.Notify(context.Background(), testEvent), boom)
}

func TestTwilioNotifierSendsSummary(t *testing.T) {
	client := new(mocks.TwilioClientMock)
	client.On("SendSMS", "whatsapp:+14155238886", "whatsapp:+34672616466",
		"Nuevo lead (Asistente de Chat - PRIME WEB)\nemail: ana@x.com\nname: Ana", "", "").
		Return(nil, nil)

	n := NewTwilioNotifierWithClient(client, "+14155238886", "+34672616466", true)
	require.NoError(t, n.Notify(context.Background(), testEvent))
	client.AssertExpectations(t)
}

func TestTwilioNotifierReportsException(t *testing.T) {
	client := new(mocks.TwilioClientMock)
	client.On("SendSMS", mock.Anything, mock.Anything, mock.Anything, "", "").
		Return(&gotwilio.Exception{Status: 400, Message: "invalid number"}, nil)

	n := NewTwilioNotifierWithClient(client, "+1", "+2", false)
	err := n.Notify(context.Background(), testEvent)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid number")
}

type countingNotifier struct {
	calls int
	err   error
}

func (c *countingNotifier) Notify(context.Context, Event) error {
	c.calls++
	return c.err
}

func TestMultiNotifiesAllAndJoinsErrors(t *testing.T) {
	failing := &countingNotifier{err: errors.New("down")}
	ok := &countingNotifier{}

	err := Multi{failing, ok}.Notify(context.Background(), testEvent)

	assert.Error(t, err)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, ok.calls)
}

func TestDispatchSwallowsErrors(t *testing.T) {
	failing := &countingNotifier{err: errors.New("down")}
	Dispatch(context.Background(), failing, testEvent)
	Dispatch(context.Background(), nil, testEvent)
	assert.Equal(t, 1, failing.calls)
}
