package audit

import (
	"clinic-admin-service/internal/app/contracts"
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/exceptions"
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

type AuditMongoRepository struct {
	Collection *mongo.Collection
}

func NewAuditMongoRepository(db *mongo.Client, dbName string) contracts.AuditRepository {
	return &AuditMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAuditLogs),
	}
}

func (repo *AuditMongoRepository) Insert(ctx context.Context, entry *models.AuditLog) error {
	_, err := repo.Collection.InsertOne(ctx, entry)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}
