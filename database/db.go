package database

import (
	"context"
	"time"

	"notarius/config"
	"notarius/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient backs the booking store; set once by InitDB.
var MongoClient *mongo.Client

// InitDB connects to MongoDB and verifies reachability. The booking store
// is the system of record for confirmed slots, so startup fails hard when
// it cannot be reached.
func InitDB() {
	logger := utils.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.AppConfig.DatabaseURL))
	if err != nil {
		logger.Sugar().Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		logger.Sugar().Fatalf("failed to ping MongoDB: %v", err)
	}

	MongoClient = client
	logger.Info("connected to booking store")
}
