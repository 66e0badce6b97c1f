package repository

import (
	"sync"

	"hrms.io/entities"
	"hrms.io/infrastructure/database/connection/datastore"
	"hrms.io/infrastructure/database/repository/mongo"
)

var verificationLogOnce = sync.Once{}

var verificationLogRepository mongo.MongoRepository[entities.VerificationLog]

func VerificationLogRepo() *mongo.MongoRepository[entities.VerificationLog] {
	verificationLogOnce.Do(func() {
		verificationLogRepository = mongo.MongoRepository[entities.VerificationLog]{Model: datastore.VerificationLogModel}
	})
	return &verificationLogRepository
}
