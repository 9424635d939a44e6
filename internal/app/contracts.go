package app

import (
	"context"

	"quizdesk/internal/domain"
)

// TokenKey is the fixed storage key of the admin token.
const TokenKey = "quiz_admin_token"

// TokenStore abstracts where the single authentication token lives (memory, Redis, file).
type TokenStore interface {
	Set(ctx context.Context, token string) error
	Get(ctx context.Context) (string, bool, error)
	Clear(ctx context.Context) error
	IsPresent(ctx context.Context) bool
}

// AdminGateway is the authenticated subset of the backend API.
type AdminGateway interface {
	Login(ctx context.Context, username, password string) (string, error)
	ListQuizzes(ctx context.Context) ([]domain.Quiz, error)
	GetQuiz(ctx context.Context, id string) (domain.Quiz, error)
	CreateQuiz(ctx context.Context, draft domain.QuizDraft) (domain.Quiz, error)
	UpdateQuiz(ctx context.Context, id string, draft domain.QuizDraft) (domain.Quiz, error)
	DeleteQuiz(ctx context.Context, id string) error
	CreateQuestion(ctx context.Context, quizID string, draft domain.QuestionDraft) (domain.Question, error)
	UpdateQuestion(ctx context.Context, id string, draft domain.QuestionDraft) (domain.Question, error)
	DeleteQuestion(ctx context.Context, id string) error
}

// PublicGateway is the unauthenticated subset used by respondents.
type PublicGateway interface {
	GetPublicQuiz(ctx context.Context, id string) (domain.Quiz, error)
	SubmitQuiz(ctx context.Context, id string, submission domain.Submission) (domain.Result, error)
}
