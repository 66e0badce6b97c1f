package database

import "hrms.io/infrastructure/database/connection"

func SetUpDatabase() {
	connection.ConnectToDatabase()
}

func CleanUp() {
	connection.CleanUp()
}

type BaseModel interface {
	ParseModel() any
}
