package connection

import (
	"atmsecurity.io/infrastructure/database/connection/cache"
	"atmsecurity.io/infrastructure/database/connection/datastore"
)

func ConnectToDatabase() error {
	if err := datastore.ConnectToDatabase(); err != nil {
		return err
	}
	return cache.ConnectToCache()
}

func CleanUp() {
	datastore.CleanUp()
	cache.CleanUp()
}
