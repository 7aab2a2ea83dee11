package datastore

import (
	"context"
	"errors"
	"time"

	"atmsecurity.io/infrastructure/env"
	"atmsecurity.io/infrastructure/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserModel        *mongo.Collection
	AccountModel     *mongo.Collection
	TransactionModel *mongo.Collection

	client *mongo.Client
)

func connectMongo() error {
	url := env.Settings.DBURL
	if url == "" {
		logger.Error("mongo url missing")
		return errors.New("DB_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(url)
	clientOpts.SetMinPoolSize(5)
	clientOpts.SetMaxPoolSize(50)

	var err error
	client, err = mongo.Connect(ctx, clientOpts)
	if err != nil {
		logger.Warning("an error occured while starting the database", logger.LoggerOptions{Key: "error", Data: err})
		return err
	}
	if err = client.Ping(ctx, nil); err != nil {
		logger.Warning("could not reach mongodb", logger.LoggerOptions{Key: "error", Data: err})
		return err
	}

	db := client.Database(env.Settings.DBName)
	setUpIndexes(ctx, db)

	logger.Info("connected to mongodb successfully")
	return nil
}

// Set up the indexes for the database
func setUpIndexes(ctx context.Context, db *mongo.Database) {
	UserModel = db.Collection("Users")
	_, err := UserModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}, {
		Keys: bson.D{{Key: "employeeID", Value: 1}},
		Options: options.Index().SetUnique(true).SetPartialFilterExpression(bson.M{
			"employeeID": bson.M{"$type": "string"},
		}),
	}, {
		Keys:    bson.D{{Key: "role", Value: 1}},
		Options: options.Index(),
	}})
	logIndexError("Users", err)

	AccountModel = db.Collection("Accounts")
	_, err = AccountModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "userID", Value: 1}},
		Options: options.Index().SetUnique(true),
	}, {
		Keys:    bson.D{{Key: "accountNumber", Value: 1}},
		Options: options.Index().SetUnique(true),
	}})
	logIndexError("Accounts", err)

	TransactionModel = db.Collection("Transactions")
	_, err = TransactionModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "accountID", Value: 1}, {Key: "timestamp", Value: -1}},
		Options: options.Index(),
	}, {
		Keys:    bson.D{{Key: "type", Value: 1}},
		Options: options.Index(),
	}})
	logIndexError("Transactions", err)

	logger.Info("mongodb indexes set up successfully")
}

func logIndexError(collection string, err error) {
	if err == nil {
		return
	}
	logger.Error("could not create mongodb indexes", logger.LoggerOptions{
		Key:  "collection",
		Data: collection,
	}, logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
}

func ConnectToDatabase() error {
	return connectMongo()
}

func CleanUp() {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		logger.Error("error disconnecting from mongodb", logger.LoggerOptions{Key: "error", Data: err})
	}
}
