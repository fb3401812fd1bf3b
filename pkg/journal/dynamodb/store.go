package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/dayo/merchant-bulk-payments/pkg/journal"
)

// DynamoDBAPI is the subset of the DynamoDB client used by the journal store.
// Extracted as an interface so it can be mocked in tests.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Store implements the journal.Store interface using AWS DynamoDB.
type Store struct {
	Client    DynamoDBAPI
	TableName string
}

// New creates a new Store.
func New(client DynamoDBAPI, tableName string) *Store {
	return &Store{Client: client, TableName: tableName}
}

// Make sure we conform to the interface
var _ journal.Store = (*Store)(nil)
