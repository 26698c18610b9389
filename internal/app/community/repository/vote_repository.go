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
	ErrVoteNotFound = errors.New("vote not found")
)

type voteRepository struct {
	collection *mongo.Collection
}

// NewVoteRepository создает новый репозиторий голосов
// Создает индекс по (content_id, user_email) для поиска голоса пары
// (субъект, пользователь)
func NewVoteRepository(db *mongo.Database) VoteRepository {
	collection := db.Collection("votes")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "content_id", Value: 1},
			{Key: "user_email", Value: 1},
		},
		Options: options.Index().SetName("content_user_idx"),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		fmt.Printf("Warning: failed to create index on votes: %v\n", err)
	}

	return &voteRepository{
		collection: collection,
	}
}

// subjectFilter строит фильтр по субъекту голосования
// Для отзывов тег content_type исторически не записывался, поэтому фильтр
// принимает и явный "review", и отсутствующее поле
func subjectFilter(contentID, contentType string) bson.M {
	filter := bson.M{"content_id": contentID}
	if contentType == entity.ContentTypeComment {
		filter["content_type"] = entity.ContentTypeComment
	} else {
		filter["content_type"] = bson.M{"$in": bson.A{entity.ContentTypeReview, nil}}
	}
	return filter
}

// FindBySubjectAndVoter ищет текущий голос пользователя по субъекту
func (r *voteRepository) FindBySubjectAndVoter(ctx context.Context, contentID, contentType, userEmail string) (*entity.Vote, error) {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpFind, "votes")
	defer timer.ObserveDuration()

	filter := subjectFilter(contentID, contentType)
	filter["user_email"] = userEmail

	var vote entity.Vote
	err := r.collection.FindOne(ctx, filter).Decode(&vote)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVoteNotFound
		}
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to find vote: %w", err)
	}

	return &vote, nil
}

// Create создает новый голос
// Уникальность пары (субъект, пользователь) обеспечивается проверкой перед
// вставкой в service layer; гонка двух одновременных запросов одного
// пользователя разрешается по принципу last write wins
func (r *voteRepository) Create(ctx context.Context, vote *entity.Vote) error {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpInsert, "votes")
	defer timer.ObserveDuration()

	vote.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, vote)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpInsert)
		return fmt.Errorf("failed to create vote: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		vote.ID = oid
	}

	return nil
}

// UpdateVoteType меняет тип существующего голоса и ставит updated_at
func (r *voteRepository) UpdateVoteType(ctx context.Context, vote *entity.Vote, voteType string) error {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpUpdate, "votes")
	defer timer.ObserveDuration()

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"vote_type":  voteType,
			"updated_at": now,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": vote.ID}, update)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpUpdate)
		return fmt.Errorf("failed to update vote: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrVoteNotFound
	}

	vote.VoteType = voteType
	vote.UpdatedAt = &now

	return nil
}

// Delete удаляет голос (переключение того же типа снимает голос)
func (r *voteRepository) Delete(ctx context.Context, vote *entity.Vote) error {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpDelete, "votes")
	defer timer.ObserveDuration()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": vote.ID})
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpDelete)
		return fmt.Errorf("failed to delete vote: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrVoteNotFound
	}

	return nil
}

// CountBySubject считает голоса заданного типа по субъекту
// Подсчет выполняется при каждом запросе: агрегат всегда согласован с
// содержимым коллекции ценой скана на вызов
func (r *voteRepository) CountBySubject(ctx context.Context, contentID, contentType, voteType string) (int64, error) {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpCount, "votes")
	defer timer.ObserveDuration()

	filter := subjectFilter(contentID, contentType)
	filter["vote_type"] = voteType

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpCount)
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}

	return count, nil
}
