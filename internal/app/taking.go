package app

import (
	"context"
	"fmt"
	"strings"

	"quizdesk/internal/domain"
)

// TakingState is the phase of a quiz attempt.
type TakingState int

const (
	StateLoading TakingState = iota
	StateAnswering
	StateSubmitting
	StateCompleted
)

func (s TakingState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnswering:
		return "answering"
	case StateSubmitting:
		return "submitting"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// TakingView runs one attempt at a quiz: load, answer, submit, show result.
// Nothing it holds outlives the view.
type TakingView struct {
	gateway PublicGateway
	quizID  string

	state    TakingState
	quiz     domain.Quiz
	answers  map[string]*domain.Answer
	userName string
	result   *domain.Result
}

func NewTakingView(gateway PublicGateway, quizID string) *TakingView {
	return &TakingView{gateway: gateway, quizID: quizID, state: StateLoading}
}

// State returns the current phase.
func (v *TakingView) State() TakingState { return v.state }

// Quiz returns the public quiz being taken.
func (v *TakingView) Quiz() domain.Quiz { return v.quiz }

// UserName returns the optional respondent name.
func (v *TakingView) UserName() string { return v.userName }

// Result returns the scored result once completed.
func (v *TakingView) Result() (domain.Result, bool) {
	if v.result == nil {
		return domain.Result{}, false
	}
	return *v.result, true
}

// Load fetches the public quiz and starts with one empty answer per question.
func (v *TakingView) Load(ctx context.Context) error {
	if !ValidQuizID(v.quizID) {
		return domain.ErrQuizNotFound
	}
	quiz, err := v.gateway.GetPublicQuiz(ctx, v.quizID)
	if err != nil {
		return fmt.Errorf("load quiz %s: %w", v.quizID, err)
	}
	v.quiz = quiz
	v.answers = make(map[string]*domain.Answer, len(quiz.Questions))
	for _, q := range quiz.Questions {
		v.answers[q.ID] = &domain.Answer{QuestionID: q.ID}
	}
	v.result = nil
	v.state = StateAnswering
	return nil
}

// SetUserName records the optional respondent name.
func (v *TakingView) SetUserName(name string) {
	v.userName = name
}

// SetAnswer sets one answer field of one question; other questions are untouched.
func (v *TakingView) SetAnswer(questionID string, kind domain.AnswerKind, value string) error {
	if v.state != StateAnswering {
		return domain.ErrInvalidState
	}
	answer, ok := v.answers[questionID]
	if !ok {
		return domain.ErrQuestionNotFound
	}
	question := v.question(questionID)

	switch kind {
	case domain.AnswerSelectedOption:
		if !question.Type.IsChoice() {
			return domain.ErrWrongAnswerKind
		}
		if !hasOption(question, value) {
			return domain.ErrOptionNotFound
		}
		id := value
		answer.SelectedOptionID = &id
	case domain.AnswerTextResponse:
		if question.Type.IsChoice() {
			return domain.ErrWrongAnswerKind
		}
		answer.TextResponse = value
	default:
		return fmt.Errorf("%w: %q", domain.ErrWrongAnswerKind, kind)
	}
	return nil
}

// Answer returns the current answer for a question.
func (v *TakingView) Answer(questionID string) (domain.Answer, bool) {
	a, ok := v.answers[questionID]
	if !ok {
		return domain.Answer{}, false
	}
	return *a, true
}

// Answers lists the current answers in quiz question order.
func (v *TakingView) Answers() []domain.Answer {
	out := make([]domain.Answer, 0, len(v.quiz.Questions))
	for _, q := range v.quiz.Questions {
		if a, ok := v.answers[q.ID]; ok {
			out = append(out, *a)
		}
	}
	return out
}

// Submission assembles the payload from the current answers in quiz order.
func (v *TakingView) Submission() domain.Submission {
	s := domain.Submission{Answers: v.Answers()}
	if name := strings.TrimSpace(v.userName); name != "" {
		s.UserName = &name
	}
	return s
}

// Submit posts the submission. On failure the view returns to answering with
// every answer kept so the respondent can retry.
func (v *TakingView) Submit(ctx context.Context) (domain.Result, error) {
	if v.state != StateAnswering {
		return domain.Result{}, domain.ErrInvalidState
	}
	v.state = StateSubmitting
	result, err := v.gateway.SubmitQuiz(ctx, v.quizID, v.Submission())
	if err != nil {
		v.state = StateAnswering
		return domain.Result{}, fmt.Errorf("submit quiz %s: %w", v.quizID, err)
	}
	v.result = &result
	v.state = StateCompleted
	return result, nil
}

func (v *TakingView) question(id string) domain.Question {
	for _, q := range v.quiz.Questions {
		if q.ID == id {
			return q
		}
	}
	return domain.Question{}
}

func hasOption(q domain.Question, optionID string) bool {
	for _, opt := range q.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}
