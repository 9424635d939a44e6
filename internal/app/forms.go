package app

import (
	"strings"

	"quizdesk/internal/domain"
)

// QuizForm edits a quiz. QuizID is empty when creating.
type QuizForm struct {
	QuizID string
	Draft  domain.QuizDraft
}

// Editing reports whether the form updates an existing quiz.
func (f *QuizForm) Editing() bool { return f.QuizID != "" }

// QuestionForm edits a question draft. QuestionID is empty when creating.
type QuestionForm struct {
	QuizID     string
	QuestionID string

	Text              string
	Type              domain.QuestionType
	Points            int
	Order             int
	Options           []domain.OptionDraft
	CorrectAnswerText string
}

func newQuestionForm(quizID string, nextOrder int) *QuestionForm {
	return &QuestionForm{
		QuizID:  quizID,
		Type:    domain.QuestionMultipleChoice,
		Points:  1,
		Order:   nextOrder,
		Options: []domain.OptionDraft{{Order: 1}},
	}
}

func editQuestionForm(q domain.Question) *QuestionForm {
	f := &QuestionForm{
		QuizID:            q.QuizID,
		QuestionID:        q.ID,
		Text:              q.Text,
		Type:              q.Type,
		Points:            q.Points,
		Order:             q.Order,
		CorrectAnswerText: q.CorrectAnswerText,
	}
	if f.Points < 1 {
		f.Points = 1
	}
	if f.Order < 1 {
		f.Order = 1
	}
	for i, opt := range q.Options {
		order := opt.Order
		if order == 0 {
			order = i + 1
		}
		f.Options = append(f.Options, domain.OptionDraft{Text: opt.Text, IsCorrect: opt.IsCorrect, Order: order})
	}
	if len(f.Options) == 0 {
		f.Options = []domain.OptionDraft{{Order: 1}}
	}
	return f
}

// Editing reports whether the form updates an existing question.
func (f *QuestionForm) Editing() bool { return f.QuestionID != "" }

// SetType switches the question type. Switching to true/false with only
// blank options fills in True and False.
func (f *QuestionForm) SetType(t domain.QuestionType) {
	f.Type = t
	if t != domain.QuestionTrueFalse {
		return
	}
	for _, opt := range f.Options {
		if strings.TrimSpace(opt.Text) != "" {
			return
		}
	}
	f.Options = []domain.OptionDraft{
		{Text: "True", Order: 1},
		{Text: "False", Order: 2},
	}
}

// SetOptionText updates one option's text; out of range indexes are ignored.
func (f *QuestionForm) SetOptionText(index int, text string) {
	if index < 0 || index >= len(f.Options) {
		return
	}
	f.Options[index].Text = text
}

// MarkCorrect makes options[index] the single correct option.
func (f *QuestionForm) MarkCorrect(index int) {
	f.Options = domain.SelectCorrect(f.Options, index)
}

// AddOption appends a blank option.
func (f *QuestionForm) AddOption() {
	f.Options = domain.AddOption(f.Options)
}

// RemoveOption drops an option unless it is the last one.
func (f *QuestionForm) RemoveOption(index int) bool {
	var removed bool
	f.Options, removed = domain.RemoveOption(f.Options, index)
	return removed
}

// Draft builds the request payload. Text questions carry only the reference
// answer; choice questions carry options renumbered from 1.
func (f *QuestionForm) Draft() domain.QuestionDraft {
	d := domain.QuestionDraft{
		Text:   f.Text,
		Type:   f.Type,
		Points: f.Points,
		Order:  f.Order,
	}
	if f.Type == domain.QuestionFreeText {
		d.CorrectAnswerText = f.CorrectAnswerText
	} else {
		d.Options = domain.Renumber(f.Options)
	}
	return d
}
