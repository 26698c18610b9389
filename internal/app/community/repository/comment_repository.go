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
	// Стандартные ошибки репозитория для обработки в service layer
	ErrCommentNotFound = errors.New("comment not found")
)

const serviceName = "community-service"

type commentRepository struct {
	collection *mongo.Collection
}

// NewCommentRepository создает новый репозиторий комментариев
// Автоматически создает индекс по article_id для быстрой выборки
func NewCommentRepository(db *mongo.Database) CommentRepository {
	collection := db.Collection("comments")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "article_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
		Options: options.Index().SetName("article_id_created_at_idx"),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		// Логируем ошибку, но не прерываем работу - индекс может уже существовать
		fmt.Printf("Warning: failed to create index on article_id: %v\n", err)
	}

	return &commentRepository{
		collection: collection,
	}
}

// Create создает новый комментарий в MongoDB
// Оригинальный content сохраняется навсегда: is_removed и redacted_content
// задаются только модераторскими операциями поверх него
func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpInsert, "comments")
	defer timer.ObserveDuration()

	comment.CreatedAt = time.Now().UTC()
	comment.IsRemoved = false
	comment.RedactedContent = nil

	result, err := r.collection.InsertOne(ctx, comment)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpInsert)
		return fmt.Errorf("failed to create comment: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		comment.ID = oid
	}

	return nil
}

// GetByID получает комментарий по ID
// Некорректный hex намеренно не является sentinel-ошибкой: обертка
// всплывает на handler как обычная ошибка хранилища
func (r *commentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID: %w", err)
	}

	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpFind, "comments")
	defer timer.ObserveDuration()

	var comment entity.Comment
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCommentNotFound
		}
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return &comment, nil
}

// GetByArticleID получает все комментарии статьи, новые первыми
// Удаленные и отредактированные комментарии не фильтруются: решение о
// показе принимает слой отображения
func (r *commentRepository) GetByArticleID(ctx context.Context, articleID string) ([]entity.Comment, error) {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpFind, "comments")
	defer timer.ObserveDuration()

	filter := bson.M{"article_id": articleID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}
	defer cursor.Close(ctx)

	comments := make([]entity.Comment, 0)
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}

	return comments, nil
}

// CountByArticleID считает все комментарии статьи, включая удаленные
// и отредактированные
func (r *commentRepository) CountByArticleID(ctx context.Context, articleID string) (int64, error) {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpCount, "comments")
	defer timer.ObserveDuration()

	count, err := r.collection.CountDocuments(ctx, bson.M{"article_id": articleID})
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpCount)
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}

	return count, nil
}

// SoftDelete помечает комментарий удаленным, сохраняя оригинальный content
// Флаг is_removed переключается только в true
func (r *commentRepository) SoftDelete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid comment ID: %w", err)
	}

	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpUpdate, "comments")
	defer timer.ObserveDuration()

	update := bson.M{"$set": bson.M{"is_removed": true}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpUpdate)
		return fmt.Errorf("failed to soft delete comment: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrCommentNotFound
	}

	return nil
}

// Redact записывает замещающий текст модератора, не трогая content
func (r *commentRepository) Redact(ctx context.Context, id string, redactedContent string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid comment ID: %w", err)
	}

	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpUpdate, "comments")
	defer timer.ObserveDuration()

	update := bson.M{"$set": bson.M{"redacted_content": redactedContent}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpUpdate)
		return fmt.Errorf("failed to redact comment: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrCommentNotFound
	}

	return nil
}
