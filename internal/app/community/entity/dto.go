package entity

// CreateCommentRequest - запрос на создание комментария
type CreateCommentRequest struct {
	ArticleID string `json:"article_id" validate:"required"`
	Content   string `json:"content" validate:"required"`
	ParentID  string `json:"parent_id" validate:"omitempty"`
}

// VoteRequest - запрос на голосование
type VoteRequest struct {
	VoteType string `json:"vote_type" validate:"required,oneof=up down"`
}

// FlagRequest - запрос на подачу жалобы
type FlagRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// RedactCommentRequest - запрос модератора на редактирование комментария
type RedactCommentRequest struct {
	RedactedContent string `json:"redacted_content" validate:"required"`
}

// ResolveFlagRequest - запрос модератора на разрешение жалобы
type ResolveFlagRequest struct {
	Action          string `json:"action" validate:"required"`
	RedactedContent string `json:"redacted_content" validate:"omitempty"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse - подтверждение выполненной операции
type SuccessResponse struct {
	Success bool `json:"success"`
}

// VoteResponse - ответ на операцию голосования
type VoteResponse struct {
	Success bool           `json:"success"`
	Action  string         `json:"action"`
	Votes   *VoteAggregate `json:"votes"`
}

// UserVoteResponse - текущий голос пользователя, null если голоса нет
type UserVoteResponse struct {
	VoteType *string `json:"vote_type"`
}

// CommentListResponse - список комментариев к статье
type CommentListResponse struct {
	Comments []Comment `json:"comments"`
	Total    int       `json:"total"`
}

// FlagListResponse - очередь модерации
type FlagListResponse struct {
	Flags []FlagWithPreview `json:"flags"`
	Total int               `json:"total"`
}

// AuthStatusResponse - ответ о статусе аутентификации
type AuthStatusResponse struct {
	Authenticated bool      `json:"authenticated"`
	User          *AuthUser `json:"user,omitempty"`
}

// AuthUser - данные пользователя из сессии
type AuthUser struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	IsModerator bool   `json:"is_moderator"`
}
