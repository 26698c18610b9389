package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"septemberplums/internal/app/community/entity"
	"septemberplums/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrFlagNotFound = errors.New("flag not found")
)

type flagRepository struct {
	collection *mongo.Collection
}

// NewFlagRepository создает новый репозиторий жалоб
// Индекс по resolved ускоряет выборку очереди модерации
func NewFlagRepository(db *mongo.Database) FlagRepository {
	collection := db.Collection("flags")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "resolved", Value: 1},
			{Key: "created_at", Value: -1},
		},
		Options: options.Index().SetName("resolved_created_at_idx"),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		fmt.Printf("Warning: failed to create index on flags: %v\n", err)
	}

	subjectIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "content_id", Value: 1},
			{Key: "user_email", Value: 1},
		},
		Options: options.Index().SetName("content_user_idx"),
	}

	_, err = collection.Indexes().CreateOne(ctx, subjectIndex)
	if err != nil {
		fmt.Printf("Warning: failed to create index on flags: %v\n", err)
	}

	return &flagRepository{
		collection: collection,
	}
}

// Create создает новую нерешенную жалобу
func (r *flagRepository) Create(ctx context.Context, flag *entity.Flag) error {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpInsert, "flags")
	defer timer.ObserveDuration()

	flag.CreatedAt = time.Now().UTC()
	flag.Resolved = false

	result, err := r.collection.InsertOne(ctx, flag)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpInsert)
		return fmt.Errorf("failed to create flag: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		flag.ID = oid
	}

	return nil
}

// ExistsBySubjectAndVoter проверяет, жаловался ли пользователь на субъект
// Проверка намеренно не фильтрует по resolved: одна жалоба на пару
// (субъект, пользователь) навсегда, даже после разрешения
func (r *flagRepository) ExistsBySubjectAndVoter(ctx context.Context, contentID, contentType, userEmail string) (bool, error) {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpCount, "flags")
	defer timer.ObserveDuration()

	filter := subjectFilter(contentID, contentType)
	filter["user_email"] = userEmail

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpCount)
		return false, fmt.Errorf("failed to check flag existence: %w", err)
	}

	return count > 0, nil
}

// GetByID получает жалобу по ID
func (r *flagRepository) GetByID(ctx context.Context, id string) (*entity.Flag, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid flag ID: %w", err)
	}

	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpFind, "flags")
	defer timer.ObserveDuration()

	var flag entity.Flag
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&flag)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrFlagNotFound
		}
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to get flag: %w", err)
	}

	return &flag, nil
}

// ListUnresolved возвращает все нерешенные жалобы, новые первыми
func (r *flagRepository) ListUnresolved(ctx context.Context) ([]entity.Flag, error) {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpFind, "flags")
	defer timer.ObserveDuration()

	filter := bson.M{"resolved": false}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to find flags: %w", err)
	}
	defer cursor.Close(ctx)

	flags := make([]entity.Flag, 0)
	if err := cursor.All(ctx, &flags); err != nil {
		return nil, fmt.Errorf("failed to decode flags: %w", err)
	}

	return flags, nil
}

// Resolve помечает жалобу разрешенной и записывает метаданные действия
// Переход выполняется ровно один раз; жалобы никогда не удаляются
func (r *flagRepository) Resolve(ctx context.Context, id string, resolution entity.FlagResolution) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid flag ID: %w", err)
	}

	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpUpdate, "flags")
	defer timer.ObserveDuration()

	update := bson.M{
		"$set": bson.M{
			"resolved":         true,
			"resolved_at":      resolution.ResolvedAt,
			"resolved_by":      resolution.ResolvedBy,
			"action_taken":     resolution.ActionTaken,
			"redacted_content": resolution.RedactedContent,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpUpdate)
		return fmt.Errorf("failed to resolve flag: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrFlagNotFound
	}

	return nil
}
