package notifications

import (
	"clinic-admin-service/internal/app/contracts"
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/exceptions"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const indexTimeout = 10 * time.Second

type NotificationMongoRepository struct {
	Collection *mongo.Collection
	Log        *zap.Logger
}

// NewNotificationMongoRepository also ensures the collection indexes. A failure
// there is logged and the repository is still returned.
func NewNotificationMongoRepository(ctx context.Context, db *mongo.Client, dbName string, logger *zap.Logger) contracts.NotificationRepository {
	repo := &NotificationMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionNotifications),
		Log:        logger,
	}

	indexCtx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()
	if err := repo.EnsureIndexes(indexCtx); err != nil {
		logger.Warn("NewNotificationMongoRepository failed to ensure indexes", zap.Error(err))
	}
	return repo
}

// notificationIndexes serves FindByRecipient (recipient, newest first) and
// DeleteReadBefore (read, read_at).
func notificationIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "recipient_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("recipient_id_created_at"),
		},
		{
			Keys:    bson.D{{Key: "read", Value: 1}, {Key: "read_at", Value: 1}},
			Options: options.Index().SetName("read_read_at"),
		},
	}
}

func (repo *NotificationMongoRepository) EnsureIndexes(ctx context.Context) error {
	names, err := repo.Collection.Indexes().CreateMany(ctx, notificationIndexes())
	if err != nil {
		return exceptions.ErrMongoDBCreateIndex(err)
	}
	repo.Log.Debug("NotificationMongoRepository.EnsureIndexes indexes ready", zap.Strings("indexes", names))
	return nil
}

func (repo *NotificationMongoRepository) InsertMany(ctx context.Context, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	documents := make([]interface{}, 0, len(notifications))
	for _, notification := range notifications {
		documents = append(documents, notification)
	}

	_, err := repo.Collection.InsertMany(ctx, documents)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *NotificationMongoRepository) FindByRecipient(ctx context.Context, request *requests.FindNotifications) ([]models.Notification, int, error) {
	filter := bson.M{"recipient_id": request.RecipientID}
	if request.UnreadOnly {
		filter["read"] = false
	}

	total, err := repo.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if request.PageSize > 0 {
		page := request.Page
		if page < 1 {
			page = 1
		}
		findOptions.SetSkip(int64((page - 1) * request.PageSize))
		findOptions.SetLimit(int64(request.PageSize))
	}

	cursor, err := repo.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	notifications := make([]models.Notification, 0)
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return notifications, int(total), nil
}

func (repo *NotificationMongoRepository) MarkRead(ctx context.Context, recipientID, notificationID string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{"_id": objectID, "recipient_id": recipientID}
	update := bson.M{"$set": bson.M{"read": true, "read_at": time.Now().UTC()}}

	result, err := repo.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount > 0, nil
}

// DeleteReadBefore removes read notifications whose read_at is older than before.
func (repo *NotificationMongoRepository) DeleteReadBefore(ctx context.Context, before time.Time) (int64, error) {
	filter := bson.M{"read": true, "read_at": bson.M{"$lt": before}}

	result, err := repo.Collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount, nil
}
