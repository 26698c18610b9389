package mocks

import (
	"context"
	"time"

	"septemberplums/internal/app/community/entity"

	"github.com/stretchr/testify/mock"
)

// MockCommentRepository мок для CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetByArticleID(ctx context.Context, articleID string) ([]entity.Comment, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) CountByArticleID(ctx context.Context, articleID string) (int64, error) {
	args := m.Called(ctx, articleID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommentRepository) Redact(ctx context.Context, id string, redactedContent string) error {
	args := m.Called(ctx, id, redactedContent)
	return args.Error(0)
}

// MockVoteRepository мок для VoteRepository
type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) FindBySubjectAndVoter(ctx context.Context, contentID, contentType, userEmail string) (*entity.Vote, error) {
	args := m.Called(ctx, contentID, contentType, userEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Vote), args.Error(1)
}

func (m *MockVoteRepository) Create(ctx context.Context, vote *entity.Vote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

func (m *MockVoteRepository) UpdateVoteType(ctx context.Context, vote *entity.Vote, voteType string) error {
	args := m.Called(ctx, vote, voteType)
	return args.Error(0)
}

func (m *MockVoteRepository) Delete(ctx context.Context, vote *entity.Vote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

func (m *MockVoteRepository) CountBySubject(ctx context.Context, contentID, contentType, voteType string) (int64, error) {
	args := m.Called(ctx, contentID, contentType, voteType)
	return args.Get(0).(int64), args.Error(1)
}

// MockFlagRepository мок для FlagRepository
type MockFlagRepository struct {
	mock.Mock
}

func (m *MockFlagRepository) Create(ctx context.Context, flag *entity.Flag) error {
	args := m.Called(ctx, flag)
	return args.Error(0)
}

func (m *MockFlagRepository) ExistsBySubjectAndVoter(ctx context.Context, contentID, contentType, userEmail string) (bool, error) {
	args := m.Called(ctx, contentID, contentType, userEmail)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlagRepository) GetByID(ctx context.Context, id string) (*entity.Flag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Flag), args.Error(1)
}

func (m *MockFlagRepository) ListUnresolved(ctx context.Context) ([]entity.Flag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Flag), args.Error(1)
}

func (m *MockFlagRepository) Resolve(ctx context.Context, id string, resolution entity.FlagResolution) error {
	args := m.Called(ctx, id, resolution)
	return args.Error(0)
}

// MockHiddenReviewRepository мок для HiddenReviewRepository
type MockHiddenReviewRepository struct {
	mock.Mock
}

func (m *MockHiddenReviewRepository) Create(ctx context.Context, hidden *entity.HiddenReview) error {
	args := m.Called(ctx, hidden)
	return args.Error(0)
}

func (m *MockHiddenReviewRepository) ListReviewIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockCatalogCache мок для CatalogCache
type MockCatalogCache struct {
	mock.Mock
}

func (m *MockCatalogCache) GetPayload(ctx context.Context, key string) (map[string]any, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockCatalogCache) SetPayload(ctx context.Context, key string, payload map[string]any, ttl time.Duration) error {
	args := m.Called(ctx, key, payload, ttl)
	return args.Error(0)
}

func (m *MockCatalogCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockMessagePublisher мок для Kafka MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
	Messages [][]byte
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	m.Messages = append(m.Messages, value)
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockCatalogFetcher мок для клиента внешнего каталога
type MockCatalogFetcher struct {
	mock.Mock
}

func (m *MockCatalogFetcher) GetProducts(ctx context.Context, limit, skip string) (map[string]any, error) {
	args := m.Called(ctx, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockCatalogFetcher) GetProduct(ctx context.Context, id string) (map[string]any, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockCatalogFetcher) SearchProducts(ctx context.Context, query string) (map[string]any, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}
