package repository

import (
	"sync"

	"atmsecurity.io/entities"
	"atmsecurity.io/infrastructure/database/connection/datastore"
	"atmsecurity.io/infrastructure/database/repository/mongo"
)

var transactionOnce = sync.Once{}

var transactionRepository mongo.MongoRepository[entities.Transaction]

func TransactionRepo() *mongo.MongoRepository[entities.Transaction] {
	transactionOnce.Do(func() {
		transactionRepository = mongo.MongoRepository[entities.Transaction]{Model: datastore.TransactionModel}
	})
	return &transactionRepository
}
