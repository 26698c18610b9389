//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"septemberplums/internal/app/community/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const BaseURL = "http://localhost:8000"

// Секрет должен совпадать с SESSION_SECRET запущенного сервиса
var sessionSecret = getEnv("E2E_SESSION_SECRET", "your-secret-key-change-this-in-production")

func issueToken(t *testing.T, email, name string) string {
	claims := jwt.MapClaims{
		"email": email,
		"name":  name,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(sessionSecret))
	require.NoError(t, err)
	return token
}

func authHeaders(token string) http.Header {
	headers := make(http.Header)
	headers.Set("Content-Type", "application/json")
	headers.Set("Authorization", "Bearer "+token)
	return headers
}

func TestFullCommentModerationFlow(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}
	articleID := "product_e2e_" + primitive.NewObjectID().Hex()

	userToken := issueToken(t, "user@x.com", "Test User")
	moderatorToken := issueToken(t, "moderator@hw3.com", "Moderator")

	// Create comment
	createReq := entity.CreateCommentRequest{ArticleID: articleID, Content: "e2e comment"}
	body, _ := json.Marshal(createReq)

	req, _ := http.NewRequest(http.MethodPost, BaseURL+"/api/comments", bytes.NewBuffer(body))
	req.Header = authHeaders(userToken)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created entity.Comment
	json.NewDecoder(resp.Body).Decode(&created)
	commentID := created.ID.Hex()

	// Vote up
	voteBody, _ := json.Marshal(entity.VoteRequest{VoteType: "up"})
	req, _ = http.NewRequest(http.MethodPost, BaseURL+"/api/comments/"+commentID+"/vote", bytes.NewBuffer(voteBody))
	req.Header = authHeaders(userToken)

	resp, err = client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var voteResp entity.VoteResponse
	json.NewDecoder(resp.Body).Decode(&voteResp)
	assert.Equal(t, "added", voteResp.Action)
	assert.Equal(t, int64(1), voteResp.Votes.Score)

	// Flag it
	flagBody, _ := json.Marshal(entity.FlagRequest{Reason: "e2e spam"})
	req, _ = http.NewRequest(http.MethodPost, BaseURL+"/api/comments/"+commentID+"/flag", bytes.NewBuffer(flagBody))
	req.Header = authHeaders(userToken)

	resp, err = client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Moderator finds the flag in the queue
	req, _ = http.NewRequest(http.MethodGet, BaseURL+"/api/moderation/flags", nil)
	req.Header = authHeaders(moderatorToken)

	resp, err = client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var flags entity.FlagListResponse
	json.NewDecoder(resp.Body).Decode(&flags)

	var flagID string
	for _, f := range flags.Flags {
		if f.ContentID == commentID {
			flagID = f.ID.Hex()
		}
	}
	require.NotEmpty(t, flagID, "filed flag not present in moderation queue")

	// Resolve with remove_content
	resolveBody, _ := json.Marshal(entity.ResolveFlagRequest{Action: "remove_content"})
	req, _ = http.NewRequest(http.MethodPatch, BaseURL+"/api/moderation/flags/"+flagID+"/resolve", bytes.NewBuffer(resolveBody))
	req.Header = authHeaders(moderatorToken)

	resp, err = client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Comment stays in the listing, marked removed
	req, _ = http.NewRequest(http.MethodGet, BaseURL+"/api/comments?article_id="+articleID, nil)
	resp, err = client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var list entity.CommentListResponse
	json.NewDecoder(resp.Body).Decode(&list)
	require.Equal(t, 1, list.Total)
	assert.True(t, list.Comments[0].IsRemoved)
	assert.Equal(t, "e2e comment", list.Comments[0].Content)
}

func TestAuthStatusFlow(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	// Without a token
	resp, err := client.Get(BaseURL + "/api/auth/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var anon entity.AuthStatusResponse
	json.NewDecoder(resp.Body).Decode(&anon)
	assert.False(t, anon.Authenticated)
	assert.Nil(t, anon.User)

	// With a moderator token
	req, _ := http.NewRequest(http.MethodGet, BaseURL+"/api/auth/status", nil)
	req.Header = authHeaders(issueToken(t, "admin@hw3.com", "Admin"))

	resp, err = client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var authed entity.AuthStatusResponse
	json.NewDecoder(resp.Body).Decode(&authed)
	assert.True(t, authed.Authenticated)
	require.NotNil(t, authed.User)
	assert.True(t, authed.User.IsModerator)
}

func TestEnrichedCatalogFlow(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	resp, err := client.Get(BaseURL + "/api/products?limit=2&skip=0")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]any
	json.NewDecoder(resp.Body).Decode(&payload)

	products, ok := payload["products"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, products)

	first := products[0].(map[string]any)
	assert.Contains(t, first, "community_comments_count")

	if reviews, ok := first["reviews"].([]any); ok && len(reviews) > 0 {
		review := reviews[0].(map[string]any)
		assert.Contains(t, review, "id")
		assert.Contains(t, review, "votes")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
