package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sns"
)

// snsPublisher is the part of the SNS client the notifier uses.
type snsPublisher interface {
	PublishWithContext(ctx aws.Context, in *sns.PublishInput, opts ...request.Option) (*sns.PublishOutput, error)
}

// SNSNotifier publishes events as JSON to a topic, with the event kind in the "feed" attribute.
type SNSNotifier struct {
	client   snsPublisher
	topicARN string
}

// NewSNSNotifier creates a notifier backed by a new AWS session in region.
func NewSNSNotifier(region, topicARN string) (*SNSNotifier, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}
	return &SNSNotifier{client: sns.New(sess), topicARN: topicARN}, nil
}

func (n *SNSNotifier) Notify(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	_, err = n.client.PublishWithContext(ctx, &sns.PublishInput{
		Message:  aws.String(string(body)),
		TopicArn: aws.String(n.topicARN),
		MessageAttributes: map[string]*sns.MessageAttributeValue{
			"feed": {
				DataType:    aws.String("String"),
				StringValue: aws.String(e.Kind),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}

var _ Notifier = (*SNSNotifier)(nil)
