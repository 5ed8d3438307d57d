// Command seed loads the built-in question catalog into MongoDB. Existing
// questions are left untouched so re-running is safe.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"excel-interviewer/internal/bank"
	"excel-interviewer/internal/repository"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "excel_interviewer"
	}

	repo := repository.NewMongoQuestionRepo(client.Database(dbName))

	inserted, skipped := 0, 0
	for _, question := range bank.Catalog() {
		q := question
		err := repo.Insert(ctx, &q)
		switch {
		case errors.Is(err, repository.ErrDuplicateQuestion):
			skipped++
		case err != nil:
			log.Fatalf("Failed to insert question %s: %v", q.ID, err)
		default:
			inserted++
		}
	}

	fmt.Printf("Seeded question catalog into %s: %d inserted, %d already present\n", dbName, inserted, skipped)
}
