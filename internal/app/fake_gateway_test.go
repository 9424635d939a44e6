package app_test

import (
	"context"
	"errors"
	"fmt"

	"quizdesk/internal/domain"
)

// fakeGateway is an in-memory AdminGateway and PublicGateway. Setting fail
// makes the named call return that error once.
type fakeGateway struct {
	quizzes   map[string]domain.Quiz
	listOrder []string
	calls     []string
	fail      map[string]error
	submitted []domain.Submission
	result    domain.Result
	seq       int
}

func newFakeGateway(quizzes ...domain.Quiz) *fakeGateway {
	g := &fakeGateway{quizzes: map[string]domain.Quiz{}, fail: map[string]error{}}
	for _, q := range quizzes {
		g.quizzes[q.ID] = q
		g.listOrder = append(g.listOrder, q.ID)
	}
	return g
}

func (g *fakeGateway) record(call string) error {
	g.calls = append(g.calls, call)
	if err, ok := g.fail[call]; ok {
		delete(g.fail, call)
		return err
	}
	return nil
}

func (g *fakeGateway) count(call string) int {
	n := 0
	for _, c := range g.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (g *fakeGateway) nextID(prefix string) string {
	g.seq++
	return fmt.Sprintf("%s-%d", prefix, g.seq)
}

func (g *fakeGateway) Login(_ context.Context, username, password string) (string, error) {
	if err := g.record("Login"); err != nil {
		return "", err
	}
	if username != "admin" || password != "admin" {
		return "", &domain.APIError{Status: 401, Detail: "Incorrect username or password"}
	}
	return "token-" + username, nil
}

func (g *fakeGateway) ListQuizzes(context.Context) ([]domain.Quiz, error) {
	if err := g.record("ListQuizzes"); err != nil {
		return nil, err
	}
	out := make([]domain.Quiz, 0, len(g.listOrder))
	for _, id := range g.listOrder {
		q := g.quizzes[id]
		q.Questions = nil
		out = append(out, q)
	}
	return out, nil
}

func (g *fakeGateway) GetQuiz(_ context.Context, id string) (domain.Quiz, error) {
	if err := g.record("GetQuiz"); err != nil {
		return domain.Quiz{}, err
	}
	q, ok := g.quizzes[id]
	if !ok {
		return domain.Quiz{}, &domain.APIError{Status: 404, Detail: "Quiz not found"}
	}
	return q, nil
}

func (g *fakeGateway) CreateQuiz(_ context.Context, draft domain.QuizDraft) (domain.Quiz, error) {
	if err := g.record("CreateQuiz"); err != nil {
		return domain.Quiz{}, err
	}
	q := domain.Quiz{ID: g.nextID("created"), Title: draft.Title, Description: draft.Description}
	g.quizzes[q.ID] = q
	g.listOrder = append([]string{q.ID}, g.listOrder...)
	return q, nil
}

func (g *fakeGateway) UpdateQuiz(_ context.Context, id string, draft domain.QuizDraft) (domain.Quiz, error) {
	if err := g.record("UpdateQuiz"); err != nil {
		return domain.Quiz{}, err
	}
	q, ok := g.quizzes[id]
	if !ok {
		return domain.Quiz{}, &domain.APIError{Status: 404, Detail: "Quiz not found"}
	}
	q.Title, q.Description = draft.Title, draft.Description
	g.quizzes[id] = q
	return q, nil
}

func (g *fakeGateway) DeleteQuiz(_ context.Context, id string) error {
	if err := g.record("DeleteQuiz"); err != nil {
		return err
	}
	if _, ok := g.quizzes[id]; !ok {
		return &domain.APIError{Status: 404, Detail: "Quiz not found"}
	}
	delete(g.quizzes, id)
	for i, qid := range g.listOrder {
		if qid == id {
			g.listOrder = append(g.listOrder[:i], g.listOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (g *fakeGateway) CreateQuestion(_ context.Context, quizID string, draft domain.QuestionDraft) (domain.Question, error) {
	if err := g.record("CreateQuestion"); err != nil {
		return domain.Question{}, err
	}
	q, ok := g.quizzes[quizID]
	if !ok {
		return domain.Question{}, &domain.APIError{Status: 404, Detail: "Quiz not found"}
	}
	question := questionFromDraft(g.nextID("question"), quizID, draft)
	q.Questions = append(q.Questions, question)
	g.quizzes[quizID] = q
	return question, nil
}

func (g *fakeGateway) UpdateQuestion(_ context.Context, id string, draft domain.QuestionDraft) (domain.Question, error) {
	if err := g.record("UpdateQuestion"); err != nil {
		return domain.Question{}, err
	}
	for quizID, q := range g.quizzes {
		for i, question := range q.Questions {
			if question.ID == id {
				questions := append([]domain.Question(nil), q.Questions...)
				questions[i] = questionFromDraft(id, quizID, draft)
				q.Questions = questions
				g.quizzes[quizID] = q
				return questions[i], nil
			}
		}
	}
	return domain.Question{}, &domain.APIError{Status: 404, Detail: "Question not found"}
}

func (g *fakeGateway) DeleteQuestion(_ context.Context, id string) error {
	if err := g.record("DeleteQuestion"); err != nil {
		return err
	}
	for quizID, q := range g.quizzes {
		for i, question := range q.Questions {
			if question.ID == id {
				q.Questions = append(q.Questions[:i:i], q.Questions[i+1:]...)
				g.quizzes[quizID] = q
				return nil
			}
		}
	}
	return &domain.APIError{Status: 404, Detail: "Question not found"}
}

func (g *fakeGateway) GetPublicQuiz(_ context.Context, id string) (domain.Quiz, error) {
	if err := g.record("GetPublicQuiz"); err != nil {
		return domain.Quiz{}, err
	}
	q, ok := g.quizzes[id]
	if !ok {
		return domain.Quiz{}, &domain.APIError{Status: 404, Detail: "Quiz not found"}
	}
	return q, nil
}

func (g *fakeGateway) SubmitQuiz(_ context.Context, _ string, submission domain.Submission) (domain.Result, error) {
	if err := g.record("SubmitQuiz"); err != nil {
		return domain.Result{}, err
	}
	g.submitted = append(g.submitted, submission)
	return g.result, nil
}

func questionFromDraft(id, quizID string, draft domain.QuestionDraft) domain.Question {
	q := domain.Question{
		ID:                id,
		QuizID:            quizID,
		Text:              draft.Text,
		Type:              draft.Type,
		Points:            draft.Points,
		Order:             draft.Order,
		CorrectAnswerText: draft.CorrectAnswerText,
	}
	for i, opt := range draft.Options {
		q.Options = append(q.Options, domain.Option{
			ID:        fmt.Sprintf("%s-opt-%d", id, i+1),
			Text:      opt.Text,
			IsCorrect: opt.IsCorrect,
			Order:     opt.Order,
		})
	}
	return q
}

var errBoom = errors.New("boom")
