package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"septemberplums/internal/app/community/entity"
)

// ReviewHandler обслуживает голоса и жалобы на отзывы внешнего каталога
// Отзывы адресуются синтетическими идентификаторами product_{id}_review_{index}
type ReviewHandler struct {
	voteService VoteServiceInterface
	flagService FlagServiceInterface
	validator   *validator.Validate
}

func NewReviewHandler(voteService VoteServiceInterface, flagService FlagServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		voteService: voteService,
		flagService: flagService,
		validator:   validator.New(),
	}
}

func (h *ReviewHandler) VoteOnReview(c *gin.Context) {
	castVote(c, h.validator, h.voteService, c.Param("review_id"), entity.ContentTypeReview)
}

func (h *ReviewHandler) GetReviewVotes(c *gin.Context) {
	getVotes(c, h.voteService, c.Param("review_id"), entity.ContentTypeReview)
}

func (h *ReviewHandler) GetReviewUserVote(c *gin.Context) {
	getUserVote(c, h.voteService, c.Param("review_id"), entity.ContentTypeReview)
}

func (h *ReviewHandler) FlagReview(c *gin.Context) {
	fileFlag(c, h.validator, h.flagService, c.Param("review_id"), entity.ContentTypeReview)
}
