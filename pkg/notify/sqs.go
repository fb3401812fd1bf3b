package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQSNotifier implements the Notifier interface using AWS SQS.
type SQSNotifier struct {
	Client   *sqs.Client
	QueueURL string
}

// NewSQSNotifier creates a new SQSNotifier.
func NewSQSNotifier(client *sqs.Client, queueURL string) *SQSNotifier {
	return &SQSNotifier{
		Client:   client,
		QueueURL: queueURL,
	}
}

// Make sure we conform to the interface
var _ Notifier = (*SQSNotifier)(nil)

// PublishBatchSummary sends the batch summary to an SQS queue.
func (n *SQSNotifier) PublishBatchSummary(ctx context.Context, summary BatchSummary) error {
	// Marshal the summary to JSON.
	body, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal batch summary for SQS: %w", err)
	}

	// Send the message to SQS.
	_, err = n.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(n.QueueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("failed to send batch summary to SQS: %w", err)
	}

	return nil
}
