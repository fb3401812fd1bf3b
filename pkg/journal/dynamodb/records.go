package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dayo/merchant-bulk-payments/pkg/journal"
	"github.com/dayo/merchant-bulk-payments/pkg/models"
)

const stateSubmittedAtGSI = "state-submitted_at-index"

// Journal entries expire after 90 days.
const recordRetention = 90 * 24 * time.Hour

// RecordSubmission writes a new IN_FLIGHT entry for a freshly obtained handle.
func (s *Store) RecordSubmission(ctx context.Context, rec *models.BatchRecord) error {
	now := time.Now()
	rec.State = models.JournalInFlight
	rec.SubmittedAt = now
	rec.UpdatedAt = now
	rec.TTL = now.Add(recordRetention).Unix()

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal batch record: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.TableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(bulk_transaction_id)"),
	})
	if err != nil {
		return fmt.Errorf("failed to record batch submission: %w", err)
	}
	return nil
}

// Finalize stamps the entry for a handle with its final state and counts.
func (s *Store) Finalize(ctx context.Context, bulkTransactionID string, state models.JournalState, batch *models.BulkTransactionBatch) error {
	updatedAt, err := time.Now().MarshalText()
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TableName),
		Key: map[string]types.AttributeValue{
			"bulk_transaction_id": &types.AttributeValueMemberS{Value: bulkTransactionID},
		},
		UpdateExpression:    aws.String("SET #state = :state, #status = :status, successful_transactions = :successful, failed_transactions = :failed, updated_at = :updated_at"),
		ConditionExpression: aws.String("attribute_exists(bulk_transaction_id)"),
		ExpressionAttributeNames: map[string]string{
			"#state":  "state",
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":state":      &types.AttributeValueMemberS{Value: string(state)},
			":status":     &types.AttributeValueMemberS{Value: string(batch.Status)},
			":successful": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", batch.SuccessfulTransactions)},
			":failed":     &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", batch.FailedTransactions)},
			":updated_at": &types.AttributeValueMemberS{Value: string(updatedAt)},
		},
	}

	if _, err := s.Client.UpdateItem(ctx, input); err != nil {
		return fmt.Errorf("failed to finalize batch record %s: %w", bulkTransactionID, err)
	}
	return nil
}

// Get retrieves the entry for a handle.
func (s *Store) Get(ctx context.Context, bulkTransactionID string) (*models.BatchRecord, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"bulk_transaction_id": bulkTransactionID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch record key: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.TableName),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get batch record from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, journal.ErrRecordNotFound
	}

	var rec models.BatchRecord
	if err := attributevalue.UnmarshalMap(result.Item, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal batch record: %w", err)
	}
	return &rec, nil
}

// ListInFlight returns IN_FLIGHT entries submitted more than minAge ago.
func (s *Store) ListInFlight(ctx context.Context, minAge time.Duration) ([]models.BatchRecord, error) {
	cutoff, err := time.Now().Add(-minAge).MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cutoff time: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TableName),
		IndexName:              aws.String(stateSubmittedAtGSI),
		KeyConditionExpression: aws.String("#state = :state AND submitted_at < :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#state": "state",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":state":  &types.AttributeValueMemberS{Value: string(models.JournalInFlight)},
			":cutoff": &types.AttributeValueMemberS{Value: string(cutoff)},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query in-flight batch records: %w", err)
	}

	var records []models.BatchRecord
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal batch records: %w", err)
	}
	return records, nil
}
