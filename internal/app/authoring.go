package app

import (
	"context"
	"fmt"

	"quizdesk/internal/domain"

	"github.com/rs/zerolog/log"
)

// AuthoringMode is the visible state of the authoring view.
type AuthoringMode int

const (
	ModeListOnly AuthoringMode = iota
	ModeQuizSelected
	ModeQuizFormOpen
	ModeQuestionFormOpen
)

func (m AuthoringMode) String() string {
	switch m {
	case ModeListOnly:
		return "list-only"
	case ModeQuizSelected:
		return "quiz-selected"
	case ModeQuizFormOpen:
		return "quiz-form-open"
	case ModeQuestionFormOpen:
		return "question-form-open"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// AuthoringView manages quizzes and their questions. It only caches what the
// backend returned and reloads after every successful mutation. A failed call
// leaves the view as it was.
type AuthoringView struct {
	gateway AdminGateway

	loaded       bool
	quizzes      []domain.Quiz
	selected     *domain.Quiz
	quizForm     *QuizForm
	questionForm *QuestionForm
}

func NewAuthoringView(gateway AdminGateway) *AuthoringView {
	return &AuthoringView{gateway: gateway}
}

// Mode derives the current state from which panels are open.
func (v *AuthoringView) Mode() AuthoringMode {
	switch {
	case v.questionForm != nil:
		return ModeQuestionFormOpen
	case v.quizForm != nil:
		return ModeQuizFormOpen
	case v.selected != nil:
		return ModeQuizSelected
	default:
		return ModeListOnly
	}
}

// Loaded reports whether the quiz list has been fetched at least once.
func (v *AuthoringView) Loaded() bool { return v.loaded }

// Quizzes returns the cached quiz list.
func (v *AuthoringView) Quizzes() []domain.Quiz { return v.quizzes }

// Selected returns the quiz whose detail is shown, if any.
func (v *AuthoringView) Selected() (domain.Quiz, bool) {
	if v.selected == nil {
		return domain.Quiz{}, false
	}
	return *v.selected, true
}

// QuizForm returns the open quiz form, or nil.
func (v *AuthoringView) QuizForm() *QuizForm { return v.quizForm }

// QuestionForm returns the open question form, or nil.
func (v *AuthoringView) QuestionForm() *QuestionForm { return v.questionForm }

// Load fetches the quiz list.
func (v *AuthoringView) Load(ctx context.Context) error {
	quizzes, err := v.gateway.ListQuizzes(ctx)
	if err != nil {
		return fmt.Errorf("load quizzes: %w", err)
	}
	v.quizzes = quizzes
	v.loaded = true
	return nil
}

// Select loads a quiz's full detail and closes any open question form.
func (v *AuthoringView) Select(ctx context.Context, quizID string) error {
	quiz, err := v.gateway.GetQuiz(ctx, quizID)
	if err != nil {
		return fmt.Errorf("load quiz %s: %w", quizID, err)
	}
	v.selected = &quiz
	v.questionForm = nil
	return nil
}

// OpenNewQuiz opens an empty quiz form and clears the selection.
func (v *AuthoringView) OpenNewQuiz() {
	v.selected = nil
	v.questionForm = nil
	v.quizForm = &QuizForm{}
}

// OpenEditQuiz opens the quiz form prefilled from the selected quiz.
func (v *AuthoringView) OpenEditQuiz() error {
	if v.selected == nil {
		return domain.ErrNoQuizSelected
	}
	v.questionForm = nil
	v.quizForm = &QuizForm{
		QuizID: v.selected.ID,
		Draft:  domain.QuizDraft{Title: v.selected.Title, Description: v.selected.Description},
	}
	return nil
}

// CloseQuizForm discards the quiz form.
func (v *AuthoringView) CloseQuizForm() { v.quizForm = nil }

// SaveQuiz creates or updates a quiz from the open form.
func (v *AuthoringView) SaveQuiz(ctx context.Context, draft domain.QuizDraft) error {
	if v.quizForm == nil {
		return domain.ErrInvalidState
	}
	if err := draft.Validate(); err != nil {
		return err
	}

	editingID := v.quizForm.QuizID
	var err error
	if editingID != "" {
		_, err = v.gateway.UpdateQuiz(ctx, editingID, draft)
	} else {
		var created domain.Quiz
		created, err = v.gateway.CreateQuiz(ctx, draft)
		if err == nil {
			log.Info().Str("quizId", created.ID).Msg("quiz created")
		}
	}
	if err != nil {
		return fmt.Errorf("save quiz: %w", err)
	}

	v.quizForm = nil
	if err := v.Load(ctx); err != nil {
		return err
	}
	if editingID != "" && v.selected != nil && v.selected.ID == editingID {
		return v.Select(ctx, editingID)
	}
	return nil
}

// DeleteQuiz deletes a quiz, clears the selection and reloads the list.
func (v *AuthoringView) DeleteQuiz(ctx context.Context, quizID string) error {
	if err := v.gateway.DeleteQuiz(ctx, quizID); err != nil {
		return fmt.Errorf("delete quiz %s: %w", quizID, err)
	}
	log.Info().Str("quizId", quizID).Msg("quiz deleted")
	v.selected = nil
	v.questionForm = nil
	if v.quizForm != nil && v.quizForm.QuizID == quizID {
		v.quizForm = nil
	}
	return v.Load(ctx)
}

// OpenNewQuestion opens a blank question form for the selected quiz.
func (v *AuthoringView) OpenNewQuestion() error {
	if v.selected == nil {
		return domain.ErrNoQuizSelected
	}
	v.quizForm = nil
	v.questionForm = newQuestionForm(v.selected.ID, nextOrder(v.selected.Questions))
	return nil
}

// OpenEditQuestion opens the question form prefilled from a question of the selected quiz.
func (v *AuthoringView) OpenEditQuestion(questionID string) error {
	if v.selected == nil {
		return domain.ErrNoQuizSelected
	}
	for _, q := range v.selected.Questions {
		if q.ID == questionID {
			form := editQuestionForm(q)
			if form.QuizID == "" {
				form.QuizID = v.selected.ID
			}
			v.quizForm = nil
			v.questionForm = form
			return nil
		}
	}
	return domain.ErrQuestionNotFound
}

// CloseQuestionForm discards the question form.
func (v *AuthoringView) CloseQuestionForm() { v.questionForm = nil }

// SaveQuestion creates or updates a question from the open form, then reloads
// the selected quiz.
func (v *AuthoringView) SaveQuestion(ctx context.Context) error {
	form := v.questionForm
	if form == nil {
		return domain.ErrInvalidState
	}
	if v.selected == nil {
		return domain.ErrNoQuizSelected
	}
	draft := form.Draft()
	if err := draft.Validate(); err != nil {
		return err
	}

	var err error
	if form.Editing() {
		_, err = v.gateway.UpdateQuestion(ctx, form.QuestionID, draft)
	} else {
		_, err = v.gateway.CreateQuestion(ctx, form.QuizID, draft)
	}
	if err != nil {
		return fmt.Errorf("save question: %w", err)
	}

	v.questionForm = nil
	return v.Select(ctx, v.selected.ID)
}

// DeleteQuestion deletes a question and reloads the selected quiz.
func (v *AuthoringView) DeleteQuestion(ctx context.Context, questionID string) error {
	if v.selected == nil {
		return domain.ErrNoQuizSelected
	}
	if err := v.gateway.DeleteQuestion(ctx, questionID); err != nil {
		return fmt.Errorf("delete question %s: %w", questionID, err)
	}
	if v.questionForm != nil && v.questionForm.QuestionID == questionID {
		v.questionForm = nil
	}
	return v.Select(ctx, v.selected.ID)
}

func nextOrder(questions []domain.Question) int {
	next := len(questions) + 1
	for _, q := range questions {
		if q.Order >= next {
			next = q.Order + 1
		}
	}
	return next
}
