package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Типы контента, на который ссылаются голоса и жалобы
const (
	ContentTypeComment = "comment"
	ContentTypeReview  = "review"
)

// Типы голосов
const (
	VoteTypeUp   = "up"
	VoteTypeDown = "down"
)

// Действия модератора при разрешении жалобы
const (
	ActionRemoveContent = "remove_content"
	ActionRedactContent = "redact_content"
	ActionResolveOnly   = "resolve_only"
)

// Comment представляет комментарий пользователя к товару
// Комментарий никогда не удаляется физически: модератор либо помечает его
// is_removed, либо задает redacted_content поверх сохраненного оригинала
type Comment struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ArticleID       string             `json:"article_id" bson:"article_id"` // Идентификатор товара вида product_{id}
	Content         string             `json:"content" bson:"content"`
	UserEmail       string             `json:"user_email" bson:"user_email"`
	UserName        string             `json:"user_name" bson:"user_name"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	ParentID        string             `json:"parent_id,omitempty" bson:"parent_id,omitempty"` // Не проверяется на существование, осиротевшие ссылки допустимы
	IsRemoved       bool               `json:"is_removed" bson:"is_removed"`
	RedactedContent *string            `json:"redacted_content" bson:"redacted_content"`
}

// Vote представляет голос пользователя за комментарий или отзыв
// Инвариант: не более одного голоса на пару (субъект, пользователь).
// Для отзывов content_type исторически не записывался, поэтому при выборке
// отсутствующий тег трактуется как "review"
type Vote struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ContentID   string             `json:"content_id" bson:"content_id"`
	ContentType string             `json:"content_type,omitempty" bson:"content_type,omitempty"`
	UserEmail   string             `json:"user_email" bson:"user_email"`
	VoteType    string             `json:"vote_type" bson:"vote_type"` // up или down
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   *time.Time         `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// Flag представляет жалобу пользователя на контент
// Жалоба создается нерешенной и переходит в resolved ровно один раз;
// повторная жалоба той же пары (субъект, пользователь) отклоняется всегда,
// даже после разрешения первой
type Flag struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ContentID       string             `json:"content_id" bson:"content_id"`
	ContentType     string             `json:"content_type,omitempty" bson:"content_type,omitempty"`
	UserEmail       string             `json:"user_email" bson:"user_email"`
	Reason          string             `json:"reason" bson:"reason"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	Resolved        bool               `json:"resolved" bson:"resolved"`
	ResolvedAt      *time.Time         `json:"resolved_at,omitempty" bson:"resolved_at,omitempty"`
	ResolvedBy      string             `json:"resolved_by,omitempty" bson:"resolved_by,omitempty"`
	ActionTaken     string             `json:"action_taken,omitempty" bson:"action_taken,omitempty"`
	RedactedContent *string            `json:"redacted_content,omitempty" bson:"redacted_content,omitempty"`
}

// FlagResolution - данные, записываемые в жалобу при ее разрешении
type FlagResolution struct {
	ResolvedAt      time.Time
	ResolvedBy      string
	ActionTaken     string
	RedactedContent *string
}

// FlagWithPreview - жалоба с превью контента для списка модератора
type FlagWithPreview struct {
	Flag
	ContentPreview string `json:"content_preview"`
	AuthorName     string `json:"author_name,omitempty"`
}

// HiddenReview - запись реестра скрытых отзывов внешнего каталога
// Сам отзыв не хранится и не изменяется: его каноническая запись живет
// во внешнем каталоге, скрытие выполняется фильтрацией по review_id
type HiddenReview struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ReviewID string             `json:"review_id" bson:"review_id"`
	HiddenBy string             `json:"hidden_by" bson:"hidden_by"`
	HiddenAt time.Time          `json:"hidden_at" bson:"hidden_at"`
	Reason   string             `json:"reason" bson:"reason"`
}

// VoteAggregate - агрегат голосов по субъекту
// Всегда вычисляется подсчетом документов, инкрементально не поддерживается
type VoteAggregate struct {
	Upvotes   int64 `json:"upvotes"`
	Downvotes int64 `json:"downvotes"`
	Score     int64 `json:"score"`
}

// VoteResult - результат операции голосования
type VoteResult struct {
	Action string         `json:"action"` // added, updated или removed
	Votes  *VoteAggregate `json:"votes"`
}

// CommentEvent представляет событие о комментарии для Kafka
type CommentEvent struct {
	EventType string    `json:"event_type"` // COMMENT_CREATED
	CommentID string    `json:"comment_id"`
	ArticleID string    `json:"article_id"`
	UserEmail string    `json:"user_email"`
	Timestamp time.Time `json:"timestamp"`
}

// ModerationEvent представляет событие модерации для Kafka
type ModerationEvent struct {
	EventType   string    `json:"event_type"` // MODERATION_ACTION, REVIEW_HIDDEN
	FlagID      string    `json:"flag_id"`
	ContentID   string    `json:"content_id"`
	ContentType string    `json:"content_type"`
	Action      string    `json:"action"`
	Moderator   string    `json:"moderator"`
	Timestamp   time.Time `json:"timestamp"`
}
