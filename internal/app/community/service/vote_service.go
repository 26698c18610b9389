package service

import (
	"context"
	"errors"
	"fmt"

	"septemberplums/internal/app/community/entity"
	"septemberplums/internal/app/community/repository"
	"septemberplums/pkg/metrics"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrInvalidVoteType = errors.New("invalid vote type")
)

// VoteService обрабатывает бизнес-логику голосования
// Реализует идемпотентное переключение: повторный голос того же типа
// снимает голос, голос другого типа переворачивает существующий
type VoteService struct {
	voteRepo repository.VoteRepository
}

// NewVoteService создает новый сервис голосования
func NewVoteService(voteRepo repository.VoteRepository) *VoteService {
	return &VoteService{
		voteRepo: voteRepo,
	}
}

// normalizeContentType приводит тег типа контента к каноническому виду
// Пустой тег означает отзыв внешнего каталога
func normalizeContentType(contentType string) string {
	if contentType == entity.ContentTypeComment {
		return entity.ContentTypeComment
	}
	return entity.ContentTypeReview
}

// CastVote применяет голос пользователя к субъекту
// Нет голоса - создаем (added); тот же тип - снимаем (removed);
// другой тип - переворачиваем (updated). Между поиском и записью
// существует гонка при одновременных запросах одного пользователя;
// она разрешается по принципу last write wins без распределенных блокировок
func (s *VoteService) CastVote(ctx context.Context, contentID, contentType, voterEmail, voteType string) (*entity.VoteResult, error) {
	if voteType != entity.VoteTypeUp && voteType != entity.VoteTypeDown {
		return nil, ErrInvalidVoteType
	}

	contentType = normalizeContentType(contentType)

	var action string

	existing, err := s.voteRepo.FindBySubjectAndVoter(ctx, contentID, contentType, voterEmail)
	switch {
	case errors.Is(err, repository.ErrVoteNotFound):
		vote := &entity.Vote{
			ContentID:   contentID,
			ContentType: contentType,
			UserEmail:   voterEmail,
			VoteType:    voteType,
		}
		if err := s.voteRepo.Create(ctx, vote); err != nil {
			return nil, fmt.Errorf("failed to cast vote: %w", err)
		}
		action = "added"

	case err != nil:
		return nil, fmt.Errorf("failed to look up vote: %w", err)

	case existing.VoteType == voteType:
		if err := s.voteRepo.Delete(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to remove vote: %w", err)
		}
		action = "removed"

	default:
		if err := s.voteRepo.UpdateVoteType(ctx, existing, voteType); err != nil {
			return nil, fmt.Errorf("failed to update vote: %w", err)
		}
		action = "updated"
	}

	votes, err := s.Aggregate(ctx, contentID, contentType)
	if err != nil {
		return nil, err
	}

	metrics.VotesCast.WithLabelValues(action, contentType).Inc()

	return &entity.VoteResult{
		Action: action,
		Votes:  votes,
	}, nil
}

// Aggregate вычисляет агрегат голосов по субъекту подсчетом документов
// Агрегат не поддерживается инкрементально и всегда согласован с
// содержимым коллекции
func (s *VoteService) Aggregate(ctx context.Context, contentID, contentType string) (*entity.VoteAggregate, error) {
	contentType = normalizeContentType(contentType)

	upvotes, err := s.voteRepo.CountBySubject(ctx, contentID, contentType, entity.VoteTypeUp)
	if err != nil {
		return nil, fmt.Errorf("failed to count upvotes: %w", err)
	}

	downvotes, err := s.voteRepo.CountBySubject(ctx, contentID, contentType, entity.VoteTypeDown)
	if err != nil {
		return nil, fmt.Errorf("failed to count downvotes: %w", err)
	}

	return &entity.VoteAggregate{
		Upvotes:   upvotes,
		Downvotes: downvotes,
		Score:     upvotes - downvotes,
	}, nil
}

// GetUserVote возвращает текущий тип голоса пользователя или nil
func (s *VoteService) GetUserVote(ctx context.Context, contentID, contentType, voterEmail string) (*string, error) {
	contentType = normalizeContentType(contentType)

	vote, err := s.voteRepo.FindBySubjectAndVoter(ctx, contentID, contentType, voterEmail)
	if err != nil {
		if errors.Is(err, repository.ErrVoteNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user vote: %w", err)
	}

	return &vote.VoteType, nil
}
