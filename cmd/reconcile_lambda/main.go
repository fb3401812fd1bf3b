package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/dayo/merchant-bulk-payments/pkg/journal"
	journaldb "github.com/dayo/merchant-bulk-payments/pkg/journal/dynamodb"
	"github.com/dayo/merchant-bulk-payments/pkg/models"
	"github.com/dayo/merchant-bulk-payments/pkg/notify"
	"github.com/dayo/merchant-bulk-payments/pkg/processor"
)

var store journal.Store
var backend processor.Client
var notifier notify.Notifier

// A batch still IN_FLIGHT after this long has outlived any client-side
// polling loop and needs out-of-band reconciliation.
const staleBatchThreshold = 10 * time.Minute

func init() {
	// Load environment variables for local testing.
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	journalTable := os.Getenv("DYNAMODB_JOURNAL_TABLE_NAME")
	if journalTable == "" {
		log.Fatal("DYNAMODB_JOURNAL_TABLE_NAME environment variable not set")
	}
	store = journaldb.New(dynamodb.NewFromConfig(cfg), journalTable)

	summaryQueueURL := os.Getenv("SQS_SUMMARY_QUEUE_URL")
	if summaryQueueURL == "" {
		log.Fatal("SQS_SUMMARY_QUEUE_URL environment variable not set")
	}
	notifier = notify.NewSQSNotifier(sqs.NewFromConfig(cfg), summaryQueueURL)

	processorURL := os.Getenv("PROCESSOR_BASE_URL")
	processorKey := os.Getenv("PROCESSOR_API_KEY")
	if processorURL == "" || processorKey == "" {
		log.Fatal("PROCESSOR_BASE_URL and PROCESSOR_API_KEY must be set")
	}
	backend = processor.NewHTTPClient(processorURL, processorKey, 30*time.Second)
}

// HandleRequest is triggered by an EventBridge Schedule. It re-queries the
// processor for every stale in-flight batch handle and finalizes the ones
// that reached a terminal status while nobody was polling.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting reconciliation of stale in-flight batches...")

	stale, err := store.ListInFlight(ctx, staleBatchThreshold)
	if err != nil {
		log.Printf("ERROR: failed to list in-flight batches: %v", err)
		return err
	}

	if len(stale) == 0 {
		log.Println("No stale in-flight batches found.")
		return nil
	}

	log.Printf("Found %d stale in-flight batches. Re-querying the processor...", len(stale))

	for _, rec := range stale {
		batch, err := backend.GetBulkStatus(ctx, rec.BulkTransactionID)
		if err != nil {
			log.Printf("ERROR: failed to fetch batch %s: %v", rec.BulkTransactionID, err)
			// Continue to the next batch, don't let one failure stop the whole run.
			continue
		}

		if !batch.Status.Terminal() {
			log.Printf("Batch %s is still %s remotely, leaving it in flight", rec.BulkTransactionID, batch.Status)
			continue
		}

		if err := store.Finalize(ctx, rec.BulkTransactionID, models.JournalCompleted, batch); err != nil {
			log.Printf("ERROR: failed to finalize batch %s: %v", rec.BulkTransactionID, err)
			continue
		}

		summary := notify.BatchSummary{
			BulkTransactionID:      batch.BulkTransactionID,
			Reference:              rec.Reference,
			Status:                 batch.Status,
			TotalTransactions:      batch.TotalTransactions,
			SuccessfulTransactions: batch.SuccessfulTransactions,
			FailedTransactions:     batch.FailedTransactions,
			CompletedAt:            time.Now(),
		}
		if err := notifier.PublishBatchSummary(ctx, summary); err != nil {
			log.Printf("ERROR: failed to publish summary for batch %s: %v", rec.BulkTransactionID, err)
			continue
		}

		log.Printf("Reconciled batch %s as %s", rec.BulkTransactionID, batch.Status)
	}

	log.Println("Reconciliation finished.")
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
