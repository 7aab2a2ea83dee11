package database

import "atmsecurity.io/infrastructure/database/connection"

func SetUpDatabase() error {
	return connection.ConnectToDatabase()
}

func CleanUp() {
	connection.CleanUp()
}

type BaseModel interface {
	ParseModel() any
}
