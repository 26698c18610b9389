package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"septemberplums/internal/app/community/entity"
	"septemberplums/internal/app/community/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockModerationService struct {
	mock.Mock
}

func (m *MockModerationService) ListUnresolvedFlags(ctx context.Context) ([]entity.FlagWithPreview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.FlagWithPreview), args.Error(1)
}

func (m *MockModerationService) ResolveFlag(ctx context.Context, flagID, moderatorEmail string, req *entity.ResolveFlagRequest) error {
	args := m.Called(ctx, flagID, moderatorEmail, req)
	return args.Error(0)
}

func (m *MockModerationService) GetFlaggedContent(ctx context.Context, contentType, contentID string) (*entity.Comment, error) {
	args := m.Called(ctx, contentType, contentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func newModerationTestRouter(moderationService *MockModerationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewModerationHandler(moderationService)

	router := gin.New()
	group := router.Group("/api/moderation")
	group.Use(setAuthContext("moderator@hw3.com", "Mod", true))
	group.GET("/flags", h.ListFlags)
	group.PATCH("/flags/:flag_id/resolve", h.ResolveFlag)
	group.GET("/content/:content_type/:content_id", h.GetFlaggedContent)
	return router
}

func TestListFlags_Success(t *testing.T) {
	moderationService := new(MockModerationService)
	flags := []entity.FlagWithPreview{
		{
			Flag:           entity.Flag{ID: primitive.NewObjectID(), ContentID: "comment-1", ContentType: "comment", Reason: "spam"},
			ContentPreview: "offensive text...",
			AuthorName:     "Author",
		},
	}
	moderationService.On("ListUnresolvedFlags", mock.Anything).Return(flags, nil)

	router := newModerationTestRouter(moderationService)

	req := httptest.NewRequest(http.MethodGet, "/api/moderation/flags", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body entity.FlagListResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, "offensive text...", body.Flags[0].ContentPreview)
}

func TestResolveFlag_Success(t *testing.T) {
	moderationService := new(MockModerationService)
	flagID := primitive.NewObjectID().Hex()
	moderationService.On("ResolveFlag", mock.Anything, flagID, "moderator@hw3.com", mock.AnythingOfType("*entity.ResolveFlagRequest")).Return(nil)

	router := newModerationTestRouter(moderationService)

	body, _ := json.Marshal(entity.ResolveFlagRequest{Action: "remove_content"})
	req := httptest.NewRequest(http.MethodPatch, "/api/moderation/flags/"+flagID+"/resolve", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	moderationService.AssertExpectations(t)
}

func TestResolveFlag_NotFound(t *testing.T) {
	moderationService := new(MockModerationService)
	moderationService.On("ResolveFlag", mock.Anything, "missing", "moderator@hw3.com", mock.Anything).Return(service.ErrFlagNotFound)

	router := newModerationTestRouter(moderationService)

	body, _ := json.Marshal(entity.ResolveFlagRequest{Action: "resolve_only"})
	req := httptest.NewRequest(http.MethodPatch, "/api/moderation/flags/missing/resolve", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResolveFlag_MissingAction(t *testing.T) {
	router := newModerationTestRouter(new(MockModerationService))

	req := httptest.NewRequest(http.MethodPatch, "/api/moderation/flags/abc/resolve", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Action is required")
}

func TestResolveFlag_RedactedContentRequired(t *testing.T) {
	moderationService := new(MockModerationService)
	moderationService.On("ResolveFlag", mock.Anything, "abc", "moderator@hw3.com", mock.Anything).Return(service.ErrRedactedContentRequired)

	router := newModerationTestRouter(moderationService)

	body, _ := json.Marshal(entity.ResolveFlagRequest{Action: "redact_content"})
	req := httptest.NewRequest(http.MethodPatch, "/api/moderation/flags/abc/resolve", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Redacted content is required")
}

func TestGetFlaggedContent_Comment(t *testing.T) {
	moderationService := new(MockModerationService)
	comment := &entity.Comment{ID: primitive.NewObjectID(), Content: "flagged text"}
	moderationService.On("GetFlaggedContent", mock.Anything, "comment", "comment-1").Return(comment, nil)

	router := newModerationTestRouter(moderationService)

	req := httptest.NewRequest(http.MethodGet, "/api/moderation/content/comment/comment-1", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "flagged text")
}

func TestGetFlaggedContent_ReviewNotImplemented(t *testing.T) {
	moderationService := new(MockModerationService)
	moderationService.On("GetFlaggedContent", mock.Anything, "review", "product_1_review_0").Return(nil, service.ErrReviewContentUnavailable)

	router := newModerationTestRouter(moderationService)

	req := httptest.NewRequest(http.MethodGet, "/api/moderation/content/review/product_1_review_0", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestGetFlaggedContent_CommentNotFound(t *testing.T) {
	moderationService := new(MockModerationService)
	moderationService.On("GetFlaggedContent", mock.Anything, "comment", "missing").Return(nil, service.ErrCommentNotFound)

	router := newModerationTestRouter(moderationService)

	req := httptest.NewRequest(http.MethodGet, "/api/moderation/content/comment/missing", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
