package repository

import (
	"context"
	"time"

	"septemberplums/internal/app/community/entity"
)

// CommentRepository определяет методы для работы с комментариями в MongoDB
type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	GetByArticleID(ctx context.Context, articleID string) ([]entity.Comment, error)
	CountByArticleID(ctx context.Context, articleID string) (int64, error)
	SoftDelete(ctx context.Context, id string) error
	Redact(ctx context.Context, id string, redactedContent string) error
}

// VoteRepository определяет методы для работы с голосами в MongoDB
// Голос уникален по паре (субъект, пользователь); агрегаты всегда
// вычисляются подсчетом документов
type VoteRepository interface {
	FindBySubjectAndVoter(ctx context.Context, contentID, contentType, userEmail string) (*entity.Vote, error)
	Create(ctx context.Context, vote *entity.Vote) error
	UpdateVoteType(ctx context.Context, vote *entity.Vote, voteType string) error
	Delete(ctx context.Context, vote *entity.Vote) error
	CountBySubject(ctx context.Context, contentID, contentType, voteType string) (int64, error)
}

// FlagRepository определяет методы для работы с жалобами в MongoDB
type FlagRepository interface {
	Create(ctx context.Context, flag *entity.Flag) error
	ExistsBySubjectAndVoter(ctx context.Context, contentID, contentType, userEmail string) (bool, error)
	GetByID(ctx context.Context, id string) (*entity.Flag, error)
	ListUnresolved(ctx context.Context) ([]entity.Flag, error)
	Resolve(ctx context.Context, id string, resolution entity.FlagResolution) error
}

// HiddenReviewRepository определяет методы для реестра скрытых отзывов
type HiddenReviewRepository interface {
	Create(ctx context.Context, hidden *entity.HiddenReview) error
	ListReviewIDs(ctx context.Context) ([]string, error)
}

// CatalogCache определяет методы для кеширования сырых ответов
// внешнего каталога в Redis
type CatalogCache interface {
	GetPayload(ctx context.Context, key string) (map[string]any, error)
	SetPayload(ctx context.Context, key string, payload map[string]any, ttl time.Duration) error
	Close() error
}
