package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DBConfig holds database connection parameters
type DBConfig struct {
	URI      string
	Database string
}

// LoadDBConfig loads database configuration from environment variables
func LoadDBConfig() (*DBConfig, error) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		return nil, fmt.Errorf("database environment variable not set (MONGODB_URI)")
	}

	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "travel_fleet"
	}

	return &DBConfig{URI: uri, Database: dbName}, nil
}

// ConnectDB establishes a connection to MongoDB
func ConnectDB(cfg *DBConfig) (*mongo.Client, error) {
	var client *mongo.Client
	var err error

	// Retry connecting to the database a few times
	maxRetries := 5
	retryInterval := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err = mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
		if err == nil {
			// Try to ping the database
			err = client.Ping(ctx, nil)
			if err == nil {
				cancel()
				log.Println("Successfully connected to MongoDB!")
				return client, nil
			}
		}
		cancel()
		log.Printf("Failed to connect to database (attempt %d/%d): %v. Retrying in %v...", i+1, maxRetries, err, retryInterval)
		time.Sleep(retryInterval)
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// EnsureIndexes creates the unique indexes the schema relies on. Uniqueness
// of emails and license plates is enforced here, not in application code, so
// concurrent writers race safely.
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("unable to create users.email index: %w", err)
	}

	_, err = db.Collection("vehicles").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "licensePlate", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("unable to create vehicles.licensePlate index: %w", err)
	}

	log.Println("Indexes ensured successfully")
	return nil
}
