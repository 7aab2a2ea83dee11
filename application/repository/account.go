package repository

import (
	"sync"

	"atmsecurity.io/entities"
	"atmsecurity.io/infrastructure/database/connection/datastore"
	"atmsecurity.io/infrastructure/database/repository/mongo"
)

var accountOnce = sync.Once{}

var accountRepository mongo.MongoRepository[entities.Account]

func AccountRepo() *mongo.MongoRepository[entities.Account] {
	accountOnce.Do(func() {
		accountRepository = mongo.MongoRepository[entities.Account]{Model: datastore.AccountModel}
	})
	return &accountRepository
}
