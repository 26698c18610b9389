package repository

import (
	"context"
	"fmt"
	"time"

	"septemberplums/internal/app/community/entity"
	"septemberplums/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type hiddenReviewRepository struct {
	collection *mongo.Collection
}

// NewHiddenReviewRepository создает новый репозиторий реестра скрытых отзывов
func NewHiddenReviewRepository(db *mongo.Database) HiddenReviewRepository {
	collection := db.Collection("hidden_reviews")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "review_id", Value: 1},
		},
		Options: options.Index().SetName("review_id_idx"),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		fmt.Printf("Warning: failed to create index on hidden_reviews: %v\n", err)
	}

	return &hiddenReviewRepository{
		collection: collection,
	}
}

// Create записывает отзыв в реестр скрытых
// Присутствие review_id в реестре - единственный механизм исключения отзыва
// из ответов каталога; сама запись отзыва внешнему каталогу не принадлежит
// нам и не изменяется
func (r *hiddenReviewRepository) Create(ctx context.Context, hidden *entity.HiddenReview) error {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpInsert, "hidden_reviews")
	defer timer.ObserveDuration()

	hidden.HiddenAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, hidden)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpInsert)
		return fmt.Errorf("failed to create hidden review: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		hidden.ID = oid
	}

	return nil
}

// ListReviewIDs возвращает идентификаторы всех скрытых отзывов
func (r *hiddenReviewRepository) ListReviewIDs(ctx context.Context) ([]string, error) {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpFind, "hidden_reviews")
	defer timer.ObserveDuration()

	opts := options.Find().SetProjection(bson.M{"review_id": 1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to find hidden reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var records []entity.HiddenReview
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode hidden reviews: %w", err)
	}

	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ReviewID)
	}

	return ids, nil
}
