package connection

import (
	"hrms.io/infrastructure/database/connection/cache"
	"hrms.io/infrastructure/database/connection/datastore"
)

func ConnectToDatabase() {
	datastore.ConnectToDatabase()
	cache.ConnectToCache()
}

func CleanUp() {
	datastore.CleanUp()
	cache.CleanUp()
}
