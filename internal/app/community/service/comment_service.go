package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"septemberplums/internal/app/community/entity"
	"septemberplums/internal/app/community/infrastructure"
	"septemberplums/internal/app/community/repository"
	"septemberplums/pkg/metrics"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
)

// CommentService обрабатывает бизнес-логику комментариев
// Координирует работу репозитория и Kafka
type CommentService struct {
	commentRepo repository.CommentRepository
	publisher   infrastructure.MessagePublisher
}

// NewCommentService создает новый сервис комментариев с внедрением зависимостей
func NewCommentService(
	commentRepo repository.CommentRepository,
	publisher infrastructure.MessagePublisher,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		publisher:   publisher,
	}
}

// CreateComment создает новый комментарий
// 1. Сохраняет комментарий в MongoDB
// 2. Отправляет событие COMMENT_CREATED в Kafka
// parent_id не проверяется на существование: осиротевшие ссылки допустимы
func (s *CommentService) CreateComment(ctx context.Context, userEmail, userName string, req *entity.CreateCommentRequest) (*entity.Comment, error) {
	comment := &entity.Comment{
		ArticleID: req.ArticleID,
		Content:   req.Content,
		UserEmail: userEmail,
		UserName:  userName,
		ParentID:  req.ParentID,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	metrics.CommentsCreated.Inc()

	event := entity.CommentEvent{
		EventType: "COMMENT_CREATED",
		CommentID: comment.ID.Hex(),
		ArticleID: comment.ArticleID,
		UserEmail: comment.UserEmail,
		Timestamp: time.Now(),
	}

	if err := s.publishCommentEvent(ctx, event); err != nil {
		// Логируем ошибку, но не прерываем выполнение
		// Комментарий уже создан, проблемы с Kafka не критичны
		fmt.Printf("failed to publish comment created event: %v\n", err)
	}

	return comment, nil
}

// GetCommentsByArticle получает все комментарии статьи, новые первыми
// Удаленные и отредактированные комментарии включаются в выдачу: решение
// о показе принимает слой отображения
func (s *CommentService) GetCommentsByArticle(ctx context.Context, articleID string) ([]entity.Comment, error) {
	comments, err := s.commentRepo.GetByArticleID(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	return comments, nil
}

// GetComment получает комментарий по ID
func (s *CommentService) GetComment(ctx context.Context, commentID string) (*entity.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return comment, nil
}

// RemoveComment помечает комментарий удаленным (soft delete)
// Оригинальный content сохраняется
func (s *CommentService) RemoveComment(ctx context.Context, commentID string) error {
	if err := s.commentRepo.SoftDelete(ctx, commentID); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to remove comment: %w", err)
	}

	return nil
}

// RedactComment записывает замещающий текст модератора
func (s *CommentService) RedactComment(ctx context.Context, commentID, redactedContent string) error {
	if err := s.commentRepo.Redact(ctx, commentID, redactedContent); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to redact comment: %w", err)
	}

	return nil
}

// publishCommentEvent отправляет событие о комментарии в Kafka
func (s *CommentService) publishCommentEvent(ctx context.Context, event entity.CommentEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal comment event: %w", err)
	}

	if err := s.publisher.PublishMessage(ctx, event.CommentID, eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}
