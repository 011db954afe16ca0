package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"campus-hub/pkg/config"
	"campus-hub/pkg/logger"
	"campus-hub/pkg/queue"
)

// publish sends one document-created event, e.g.
//
//	publish -collection lost_items -id lost-1 -fields '{"userName":"Alice","title":"Wallet","location":"Library"}'
func main() {
	var (
		collection = flag.String("collection", "", "collection the document was created in")
		id         = flag.String("id", "", "document id")
		fields     = flag.String("fields", "{}", "document fields as a JSON object")
	)
	flag.Parse()

	if *collection == "" || *id == "" {
		fmt.Fprintln(os.Stderr, "collection and id are required")
		flag.Usage()
		os.Exit(2)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(*fields), &doc); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -fields: %v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	client, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	eventID, err := client.PublishDocumentCreated(ctx, queue.DocumentCreated{
		Collection: *collection,
		DocumentID: *id,
		Fields:     doc,
	})
	if err != nil {
		log.Error("Failed to publish: %v", err)
		os.Exit(1)
	}

	log.Info("Published %s/%s as event %s", *collection, *id, eventID)
}
