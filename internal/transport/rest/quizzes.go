package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"quizdesk/internal/domain"
)

func (c *Client) ListQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	var quizzes []domain.Quiz
	if err := c.do(ctx, http.MethodGet, "/api/admin/quizzes", nil, &quizzes); err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return quizzes, nil
}

func (c *Client) GetQuiz(ctx context.Context, id string) (domain.Quiz, error) {
	var quiz domain.Quiz
	if err := c.do(ctx, http.MethodGet, adminQuizPath(id), nil, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("get quiz: %w", err)
	}
	return quiz, nil
}

func (c *Client) CreateQuiz(ctx context.Context, draft domain.QuizDraft) (domain.Quiz, error) {
	var quiz domain.Quiz
	if err := c.do(ctx, http.MethodPost, "/api/admin/quizzes", draft, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("create quiz: %w", err)
	}
	return quiz, nil
}

func (c *Client) UpdateQuiz(ctx context.Context, id string, draft domain.QuizDraft) (domain.Quiz, error) {
	var quiz domain.Quiz
	if err := c.do(ctx, http.MethodPut, adminQuizPath(id), draft, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("update quiz: %w", err)
	}
	return quiz, nil
}

func (c *Client) DeleteQuiz(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, adminQuizPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	return nil
}

func (c *Client) CreateQuestion(ctx context.Context, quizID string, draft domain.QuestionDraft) (domain.Question, error) {
	var q domain.Question
	if err := c.do(ctx, http.MethodPost, adminQuizPath(quizID)+"/questions", draft, &q); err != nil {
		return domain.Question{}, fmt.Errorf("create question: %w", err)
	}
	return q, nil
}

func (c *Client) UpdateQuestion(ctx context.Context, id string, draft domain.QuestionDraft) (domain.Question, error) {
	var q domain.Question
	if err := c.do(ctx, http.MethodPut, questionPath(id), draft, &q); err != nil {
		return domain.Question{}, fmt.Errorf("update question: %w", err)
	}
	return q, nil
}

func (c *Client) DeleteQuestion(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, questionPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	return nil
}

func (c *Client) GetPublicQuiz(ctx context.Context, id string) (domain.Quiz, error) {
	var quiz domain.Quiz
	if err := c.do(ctx, http.MethodGet, publicQuizPath(id), nil, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("get public quiz: %w", err)
	}
	return quiz, nil
}

func (c *Client) SubmitQuiz(ctx context.Context, id string, submission domain.Submission) (domain.Result, error) {
	var result domain.Result
	if err := c.do(ctx, http.MethodPost, publicQuizPath(id)+"/submit", submission, &result); err != nil {
		return domain.Result{}, fmt.Errorf("submit quiz: %w", err)
	}
	return result, nil
}

func adminQuizPath(id string) string {
	return "/api/admin/quizzes/" + url.PathEscape(id)
}

func questionPath(id string) string {
	return "/api/admin/questions/" + url.PathEscape(id)
}

func publicQuizPath(id string) string {
	return "/api/public/quizzes/" + url.PathEscape(id)
}
