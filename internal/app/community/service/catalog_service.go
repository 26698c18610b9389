package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"septemberplums/internal/app/community/entity"
	"septemberplums/internal/app/community/infrastructure"
	"septemberplums/internal/app/community/infrastructure/upstream"
	"septemberplums/internal/app/community/repository"
)

var ErrProductNotFound = errors.New("product not found")

// VoteAggregator вычисляет агрегат голосов по субъекту
type VoteAggregator interface {
	Aggregate(ctx context.Context, contentID, contentType string) (*entity.VoteAggregate, error)
}

// CatalogService проксирует внешний каталог товаров и обогащает ответы
// данными сообщества: синтетическими идентификаторами отзывов, агрегатами
// голосов и счетчиком комментариев
// Кешируется только сырой ответ каталога, обогащение выполняется на каждый
// запрос, чтобы скрытые отзывы и голоса никогда не отдавались устаревшими
type CatalogService struct {
	fetcher     infrastructure.CatalogFetcher
	cache       repository.CatalogCache
	votes       VoteAggregator
	commentRepo repository.CommentRepository
	hiddenRepo  repository.HiddenReviewRepository
	cacheTTL    time.Duration
}

// NewCatalogService создает новый сервис каталога с внедрением зависимостей
func NewCatalogService(
	fetcher infrastructure.CatalogFetcher,
	cache repository.CatalogCache,
	votes VoteAggregator,
	commentRepo repository.CommentRepository,
	hiddenRepo repository.HiddenReviewRepository,
	cacheTTL time.Duration,
) *CatalogService {
	return &CatalogService{
		fetcher:     fetcher,
		cache:       cache,
		votes:       votes,
		commentRepo: commentRepo,
		hiddenRepo:  hiddenRepo,
		cacheTTL:    cacheTTL,
	}
}

// GetProducts возвращает страницу каталога с обогащенными отзывами
func (s *CatalogService) GetProducts(ctx context.Context, limit, skip string) (map[string]any, error) {
	cacheKey := fmt.Sprintf("products:list:%s:%s", limit, skip)

	payload, err := s.fetchWithCache(ctx, cacheKey, func(ctx context.Context) (map[string]any, error) {
		return s.fetcher.GetProducts(ctx, limit, skip)
	})
	if err != nil {
		return nil, err
	}

	if err := s.enrichProductList(ctx, payload); err != nil {
		return nil, err
	}

	return payload, nil
}

// GetProduct возвращает один товар с обогащенными отзывами
func (s *CatalogService) GetProduct(ctx context.Context, productID string) (map[string]any, error) {
	cacheKey := "products:id:" + productID

	payload, err := s.fetchWithCache(ctx, cacheKey, func(ctx context.Context) (map[string]any, error) {
		return s.fetcher.GetProduct(ctx, productID)
	})
	if err != nil {
		if errors.Is(err, upstream.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	hidden, err := s.hiddenReviewSet(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.enrichProduct(ctx, payload, hidden); err != nil {
		return nil, err
	}

	return payload, nil
}

// SearchProducts возвращает результаты поиска с обогащенными отзывами
func (s *CatalogService) SearchProducts(ctx context.Context, query string) (map[string]any, error) {
	cacheKey := "products:search:" + query

	payload, err := s.fetchWithCache(ctx, cacheKey, func(ctx context.Context) (map[string]any, error) {
		return s.fetcher.SearchProducts(ctx, query)
	})
	if err != nil {
		return nil, err
	}

	if err := s.enrichProductList(ctx, payload); err != nil {
		return nil, err
	}

	return payload, nil
}

// fetchWithCache применяет cache-aside к сырому ответу каталога
// Ошибки кеша не критичны: при недоступном Redis запрос уходит напрямую
// в каталог. Ошибочные ответы каталога не кешируются
func (s *CatalogService) fetchWithCache(ctx context.Context, key string, fetch func(context.Context) (map[string]any, error)) (map[string]any, error) {
	cached, err := s.cache.GetPayload(ctx, key)
	if err != nil {
		fmt.Printf("catalog cache read failed: %v\n", err)
	}
	if cached != nil {
		return cached, nil
	}

	payload, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetPayload(ctx, key, payload, s.cacheTTL); err != nil {
		fmt.Printf("catalog cache write failed: %v\n", err)
	}

	return payload, nil
}

// enrichProductList обогащает каждый товар в списочном ответе каталога
// Реестр скрытых отзывов загружается один раз на весь ответ
func (s *CatalogService) enrichProductList(ctx context.Context, payload map[string]any) error {
	rawProducts, ok := payload["products"].([]any)
	if !ok {
		return nil
	}

	hidden, err := s.hiddenReviewSet(ctx)
	if err != nil {
		return err
	}

	for _, rawProduct := range rawProducts {
		product, ok := rawProduct.(map[string]any)
		if !ok {
			continue
		}
		if err := s.enrichProduct(ctx, product, hidden); err != nil {
			return err
		}
	}

	return nil
}

// enrichProduct наделяет отзывы товара синтетическими идентификаторами и
// агрегатами голосов, фильтрует скрытые и добавляет счетчик комментариев
// Идентификатор отзыва строится по исходной позиции в ответе каталога,
// поэтому индекс берется до фильтрации скрытых
func (s *CatalogService) enrichProduct(ctx context.Context, product map[string]any, hidden map[string]struct{}) error {
	productID := entity.FormatProductID(product["id"])
	if productID == "" {
		return nil
	}

	if rawReviews, ok := product["reviews"].([]any); ok {
		kept := make([]any, 0, len(rawReviews))
		for i, rawReview := range rawReviews {
			review, ok := rawReview.(map[string]any)
			if !ok {
				kept = append(kept, rawReview)
				continue
			}

			reviewID := entity.ReviewID(productID, i)
			if _, isHidden := hidden[reviewID]; isHidden {
				continue
			}

			votes, err := s.votes.Aggregate(ctx, reviewID, entity.ContentTypeReview)
			if err != nil {
				return fmt.Errorf("failed to aggregate review votes: %w", err)
			}

			review["id"] = reviewID
			review["votes"] = votes
			kept = append(kept, review)
		}
		product["reviews"] = kept
	}

	commentsCount, err := s.commentRepo.CountByArticleID(ctx, entity.ArticleID(productID))
	if err != nil {
		return fmt.Errorf("failed to count product comments: %w", err)
	}
	product["community_comments_count"] = commentsCount

	return nil
}

// hiddenReviewSet загружает реестр скрытых отзывов как множество
func (s *CatalogService) hiddenReviewSet(ctx context.Context) (map[string]struct{}, error) {
	ids, err := s.hiddenRepo.ListReviewIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list hidden reviews: %w", err)
	}

	hidden := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		hidden[id] = struct{}{}
	}

	return hidden, nil
}
