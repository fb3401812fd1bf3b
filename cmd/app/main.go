package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/dayo/merchant-bulk-payments/pkg/handlers"
	"github.com/dayo/merchant-bulk-payments/pkg/handlers/bulk"
	"github.com/dayo/merchant-bulk-payments/pkg/handlers/items"
	"github.com/dayo/merchant-bulk-payments/pkg/handlers/transfer"
	journaldb "github.com/dayo/merchant-bulk-payments/pkg/journal/dynamodb"
	"github.com/dayo/merchant-bulk-payments/pkg/notify"
	"github.com/dayo/merchant-bulk-payments/pkg/orchestrator"
	"github.com/dayo/merchant-bulk-payments/pkg/processor"
	"github.com/dayo/merchant-bulk-payments/pkg/queue"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	processorURL := os.Getenv("PROCESSOR_BASE_URL")
	processorKey := os.Getenv("PROCESSOR_API_KEY")
	userID := os.Getenv("MERCHANT_USER_ID")
	if processorURL == "" || processorKey == "" || userID == "" {
		log.Fatal("PROCESSOR_BASE_URL, PROCESSOR_API_KEY and MERCHANT_USER_ID must be set")
	}
	backend := processor.NewHTTPClient(processorURL, processorKey, 30*time.Second)

	// AWS Session
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	journalTable := os.Getenv("DYNAMODB_JOURNAL_TABLE_NAME")
	if journalTable == "" {
		log.Fatal("DYNAMODB_JOURNAL_TABLE_NAME environment variable not set")
	}
	journalStore := journaldb.New(dynamodb.NewFromConfig(cfg), journalTable)

	summaryQueueURL := os.Getenv("SQS_SUMMARY_QUEUE_URL")
	if summaryQueueURL == "" {
		log.Fatal("SQS_SUMMARY_QUEUE_URL environment variable not set")
	}
	notifier := notify.NewSQSNotifier(sqs.NewFromConfig(cfg), summaryQueueURL)

	// Orchestration core: one owned item queue, one poller.
	itemQueue := queue.New()
	progress := orchestrator.NewProgressAggregator()
	validator := orchestrator.NewRecipientValidator(backend, itemQueue, logger)
	coordinator := orchestrator.NewCoordinator(backend, itemQueue, journalStore, progress, userID, logger)
	poller := orchestrator.NewStatusPoller(backend, itemQueue, progress, journalStore, notifier, orchestrator.DefaultPollConfig(), logger)
	flow := orchestrator.NewConfirmFlow(backend, logger)

	itemsHandler := items.NewItemsHandler(itemQueue, validator)
	bulkHandler := bulk.NewBulkHandler(coordinator, poller, itemQueue, backend, journalStore, userID)
	transferHandler := transfer.NewTransferHandler(flow)

	router := handlers.NewRouter(itemsHandler, bulkHandler, transferHandler, logger)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	// Start the server
	err = http.ListenAndServe(":"+port, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
