package handler

import (
	"context"
	"errors"
	"net/http"

	"septemberplums/internal/app/community/entity"
	"septemberplums/internal/app/community/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type CommentServiceInterface interface {
	CreateComment(ctx context.Context, userEmail, userName string, req *entity.CreateCommentRequest) (*entity.Comment, error)
	GetCommentsByArticle(ctx context.Context, articleID string) ([]entity.Comment, error)
	GetComment(ctx context.Context, commentID string) (*entity.Comment, error)
	RemoveComment(ctx context.Context, commentID string) error
	RedactComment(ctx context.Context, commentID, redactedContent string) error
}

type VoteServiceInterface interface {
	CastVote(ctx context.Context, contentID, contentType, voterEmail, voteType string) (*entity.VoteResult, error)
	Aggregate(ctx context.Context, contentID, contentType string) (*entity.VoteAggregate, error)
	GetUserVote(ctx context.Context, contentID, contentType, voterEmail string) (*string, error)
}

type FlagServiceInterface interface {
	FileFlag(ctx context.Context, contentID, contentType, voterEmail, reason string) (*entity.Flag, error)
}

type CommentHandler struct {
	commentService CommentServiceInterface
	voteService    VoteServiceInterface
	flagService    FlagServiceInterface
	validator      *validator.Validate
}

func NewCommentHandler(commentService CommentServiceInterface, voteService VoteServiceInterface, flagService FlagServiceInterface) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		voteService:    voteService,
		flagService:    flagService,
		validator:      validator.New(),
	}
}

func (h *CommentHandler) GetComments(c *gin.Context) {
	articleID := c.Query("article_id")
	if articleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Article ID is required"})
		return
	}

	comments, err := h.commentService.GetCommentsByArticle(c.Request.Context(), articleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entity.CommentListResponse{
		Comments: comments,
		Total:    len(comments),
	})
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	userEmail, userName, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req entity.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), userEmail, userName, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID := c.Param("comment_id")

	if err := h.commentService.RemoveComment(c.Request.Context(), commentID); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Success: true})
}

func (h *CommentHandler) RedactComment(c *gin.Context) {
	commentID := c.Param("comment_id")

	var req entity.RedactCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Redacted content is required"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Redacted content is required"})
		return
	}

	if err := h.commentService.RedactComment(c.Request.Context(), commentID, req.RedactedContent); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Success: true})
}

func (h *CommentHandler) VoteOnComment(c *gin.Context) {
	castVote(c, h.validator, h.voteService, c.Param("comment_id"), entity.ContentTypeComment)
}

func (h *CommentHandler) GetCommentVotes(c *gin.Context) {
	getVotes(c, h.voteService, c.Param("comment_id"), entity.ContentTypeComment)
}

func (h *CommentHandler) GetCommentUserVote(c *gin.Context) {
	getUserVote(c, h.voteService, c.Param("comment_id"), entity.ContentTypeComment)
}

func (h *CommentHandler) FlagComment(c *gin.Context) {
	fileFlag(c, h.validator, h.flagService, c.Param("comment_id"), entity.ContentTypeComment)
}

// Общие обработчики голосования и жалоб для комментариев и отзывов
func castVote(c *gin.Context, v *validator.Validate, voteService VoteServiceInterface, contentID, contentType string) {
	userEmail, _, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req entity.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := v.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vote type"})
		return
	}

	result, err := voteService.CastVote(c.Request.Context(), contentID, contentType, userEmail, req.VoteType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidVoteType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vote type"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entity.VoteResponse{
		Success: true,
		Action:  result.Action,
		Votes:   result.Votes,
	})
}

func getVotes(c *gin.Context, voteService VoteServiceInterface, contentID, contentType string) {
	votes, err := voteService.Aggregate(c.Request.Context(), contentID, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, votes)
}

func getUserVote(c *gin.Context, voteService VoteServiceInterface, contentID, contentType string) {
	userEmail, _, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	voteType, err := voteService.GetUserVote(c.Request.Context(), contentID, contentType, userEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entity.UserVoteResponse{VoteType: voteType})
}

func fileFlag(c *gin.Context, v *validator.Validate, flagService FlagServiceInterface, contentID, contentType string) {
	userEmail, _, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req entity.FlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reason is required"})
		return
	}

	if err := v.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reason is required"})
		return
	}

	if _, err := flagService.FileFlag(c.Request.Context(), contentID, contentType, userEmail, req.Reason); err != nil {
		if errors.Is(err, service.ErrAlreadyFlagged) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You have already flagged this content"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Success: true})
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
