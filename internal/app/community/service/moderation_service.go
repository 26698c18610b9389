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
	ErrAlreadyFlagged           = errors.New("already flagged")
	ErrFlagNotFound             = errors.New("flag not found")
	ErrRedactedContentRequired  = errors.New("redacted content required")
	ErrReviewContentUnavailable = errors.New("review content is not retrievable")
)

const (
	// Причина, записываемая в реестр скрытых отзывов при разрешении жалобы
	hiddenReviewReason = "moderation_action"

	// Максимальная длина превью контента в очереди модерации
	previewLength = 100
)

// ModerationService обрабатывает жалобы и действия модераторов
// Композирует реестр жалоб, хранилище комментариев и реестр скрытых отзывов
type ModerationService struct {
	flagRepo    repository.FlagRepository
	commentRepo repository.CommentRepository
	hiddenRepo  repository.HiddenReviewRepository
	publisher   infrastructure.MessagePublisher
}

// NewModerationService создает новый сервис модерации с внедрением зависимостей
func NewModerationService(
	flagRepo repository.FlagRepository,
	commentRepo repository.CommentRepository,
	hiddenRepo repository.HiddenReviewRepository,
	publisher infrastructure.MessagePublisher,
) *ModerationService {
	return &ModerationService{
		flagRepo:    flagRepo,
		commentRepo: commentRepo,
		hiddenRepo:  hiddenRepo,
		publisher:   publisher,
	}
}

// FileFlag подает жалобу на контент
// Ровно одна жалоба на пару (субъект, пользователь) за все время: повторная
// попытка отклоняется даже после разрешения первой жалобы и независимо от
// текста причины. Между проверкой дубликата и вставкой существует гонка;
// она разрешается по принципу last write wins
func (s *ModerationService) FileFlag(ctx context.Context, contentID, contentType, voterEmail, reason string) (*entity.Flag, error) {
	contentType = normalizeContentType(contentType)

	exists, err := s.flagRepo.ExistsBySubjectAndVoter(ctx, contentID, contentType, voterEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing flag: %w", err)
	}
	if exists {
		return nil, ErrAlreadyFlagged
	}

	flag := &entity.Flag{
		ContentID:   contentID,
		ContentType: contentType,
		UserEmail:   voterEmail,
		Reason:      reason,
	}

	if err := s.flagRepo.Create(ctx, flag); err != nil {
		return nil, fmt.Errorf("failed to create flag: %w", err)
	}

	metrics.FlagsFiled.WithLabelValues(contentType).Inc()

	return flag, nil
}

// ListUnresolvedFlags возвращает очередь модерации: нерешенные жалобы,
// новые первыми, с превью контента
// Для жалоб на комментарии превью берется из хранилища комментариев;
// контент отзывов без повторного запроса каталога недоступен, поэтому
// для них возвращается заглушка
func (s *ModerationService) ListUnresolvedFlags(ctx context.Context) ([]entity.FlagWithPreview, error) {
	flags, err := s.flagRepo.ListUnresolved(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list flags: %w", err)
	}

	result := make([]entity.FlagWithPreview, 0, len(flags))
	for _, flag := range flags {
		item := entity.FlagWithPreview{Flag: flag}

		if flag.ContentType == entity.ContentTypeComment {
			comment, err := s.commentRepo.GetByID(ctx, flag.ContentID)
			if err != nil {
				item.ContentPreview = "[content unavailable]"
			} else {
				item.ContentPreview = truncateContent(comment.Content)
				item.AuthorName = comment.UserName
			}
		} else {
			item.ContentPreview = "[review content - see product page]"
		}

		result = append(result, item)
	}

	return result, nil
}

// ResolveFlag применяет действие модератора и помечает жалобу разрешенной
// Операция не транзакционна: сначала мутация контента, затем обновление
// жалобы. Сбой между этими шагами оставляет примененное действие при
// неразрешенной жалобе - известное окно несогласованности
func (s *ModerationService) ResolveFlag(ctx context.Context, flagID, moderatorEmail string, req *entity.ResolveFlagRequest) error {
	flag, err := s.flagRepo.GetByID(ctx, flagID)
	if err != nil {
		if errors.Is(err, repository.ErrFlagNotFound) {
			return ErrFlagNotFound
		}
		return fmt.Errorf("failed to get flag: %w", err)
	}

	var redactedContent *string

	switch req.Action {
	case entity.ActionRemoveContent:
		if flag.ContentType == entity.ContentTypeComment {
			if err := s.commentRepo.SoftDelete(ctx, flag.ContentID); err != nil {
				// Отсутствие комментария не блокирует разрешение жалобы:
				// контент мог быть удален по другой жалобе раньше
				if !errors.Is(err, repository.ErrCommentNotFound) {
					return fmt.Errorf("failed to remove flagged comment: %w", err)
				}
			}
		} else {
			hidden := &entity.HiddenReview{
				ReviewID: flag.ContentID,
				HiddenBy: moderatorEmail,
				Reason:   hiddenReviewReason,
			}
			if err := s.hiddenRepo.Create(ctx, hidden); err != nil {
				return fmt.Errorf("failed to hide flagged review: %w", err)
			}
			metrics.ReviewsHidden.Inc()
			s.publishModerationEvent(ctx, "REVIEW_HIDDEN", flag, req.Action, moderatorEmail)
		}

	case entity.ActionRedactContent:
		if req.RedactedContent == "" {
			return ErrRedactedContentRequired
		}
		redactedContent = &req.RedactedContent
		if flag.ContentType == entity.ContentTypeComment {
			if err := s.commentRepo.Redact(ctx, flag.ContentID, req.RedactedContent); err != nil {
				if !errors.Is(err, repository.ErrCommentNotFound) {
					return fmt.Errorf("failed to redact flagged comment: %w", err)
				}
			}
		}
		// Для отзывов редактирование не сохраняется: каноническая запись
		// отзыва живет во внешнем каталоге. Замещающий текст остается
		// только в метаданных жалобы

	default:
		// resolve_only и любые прочие действия не трогают контент
	}

	resolution := entity.FlagResolution{
		ResolvedAt:      time.Now().UTC(),
		ResolvedBy:      moderatorEmail,
		ActionTaken:     req.Action,
		RedactedContent: redactedContent,
	}

	if err := s.flagRepo.Resolve(ctx, flagID, resolution); err != nil {
		return fmt.Errorf("failed to resolve flag: %w", err)
	}

	metrics.FlagsResolved.WithLabelValues(req.Action).Inc()
	s.publishModerationEvent(ctx, "MODERATION_ACTION", flag, req.Action, moderatorEmail)

	return nil
}

// GetFlaggedContent возвращает полный контент для просмотра модератором
// Контент отзывов локально не хранится, запрос отклоняется
func (s *ModerationService) GetFlaggedContent(ctx context.Context, contentType, contentID string) (*entity.Comment, error) {
	if contentType != entity.ContentTypeComment {
		return nil, ErrReviewContentUnavailable
	}

	comment, err := s.commentRepo.GetByID(ctx, contentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get flagged comment: %w", err)
	}

	return comment, nil
}

// publishModerationEvent отправляет событие модерации в Kafka
// Ошибки отправки не критичны для операции и только логируются
func (s *ModerationService) publishModerationEvent(ctx context.Context, eventType string, flag *entity.Flag, action, moderatorEmail string) {
	event := entity.ModerationEvent{
		EventType:   eventType,
		FlagID:      flag.ID.Hex(),
		ContentID:   flag.ContentID,
		ContentType: normalizeContentType(flag.ContentType),
		Action:      action,
		Moderator:   moderatorEmail,
		Timestamp:   time.Now(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		fmt.Printf("failed to marshal moderation event: %v\n", err)
		return
	}

	if err := s.publisher.PublishMessage(ctx, event.ContentID, eventData); err != nil {
		fmt.Printf("failed to publish moderation event: %v\n", err)
	}
}

// truncateContent обрезает контент до длины превью
func truncateContent(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLength {
		return content
	}
	return string(runes[:previewLength]) + "..."
}
