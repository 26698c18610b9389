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

type ModerationServiceInterface interface {
	ListUnresolvedFlags(ctx context.Context) ([]entity.FlagWithPreview, error)
	ResolveFlag(ctx context.Context, flagID, moderatorEmail string, req *entity.ResolveFlagRequest) error
	GetFlaggedContent(ctx context.Context, contentType, contentID string) (*entity.Comment, error)
}

type ModerationHandler struct {
	moderationService ModerationServiceInterface
	validator         *validator.Validate
}

func NewModerationHandler(moderationService ModerationServiceInterface) *ModerationHandler {
	return &ModerationHandler{
		moderationService: moderationService,
		validator:         validator.New(),
	}
}

func (h *ModerationHandler) ListFlags(c *gin.Context) {
	flags, err := h.moderationService.ListUnresolvedFlags(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entity.FlagListResponse{
		Flags: flags,
		Total: len(flags),
	})
}

func (h *ModerationHandler) ResolveFlag(c *gin.Context) {
	moderatorEmail, _, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	flagID := c.Param("flag_id")

	var req entity.ResolveFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Action is required"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Action is required"})
		return
	}

	if err := h.moderationService.ResolveFlag(c.Request.Context(), flagID, moderatorEmail, &req); err != nil {
		if errors.Is(err, service.ErrFlagNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Flag not found"})
			return
		}
		if errors.Is(err, service.ErrRedactedContentRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Redacted content is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Success: true})
}

func (h *ModerationHandler) GetFlaggedContent(c *gin.Context) {
	contentType := c.Param("content_type")
	contentID := c.Param("content_id")

	comment, err := h.moderationService.GetFlaggedContent(c.Request.Context(), contentType, contentID)
	if err != nil {
		if errors.Is(err, service.ErrReviewContentUnavailable) {
			c.JSON(http.StatusNotImplemented, gin.H{"error": "Review content is not stored locally"})
			return
		}
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, comment)
}
