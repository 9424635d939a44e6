package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestQuizDraftValidate(t *testing.T) {
	if err := (QuizDraft{Title: "Capitals"}).Validate(); err != nil {
		t.Fatalf("expected valid draft, got %v", err)
	}

	err := (QuizDraft{}).Validate()
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "title" {
		t.Fatalf("expected title validation error, got %v", err)
	}

	err = (QuizDraft{Title: strings.Repeat("x", 256)}).Validate()
	if !errors.As(err, &vErr) || !strings.Contains(vErr.Reason, "255") {
		t.Fatalf("expected max length error, got %v", err)
	}
}

func TestQuestionDraftValidate(t *testing.T) {
	valid := QuestionDraft{
		Text:   "2 + 2?",
		Type:   QuestionMultipleChoice,
		Points: 2,
		Order:  1,
		Options: []OptionDraft{
			{Text: "4", IsCorrect: true, Order: 1},
			{Text: "5", Order: 2},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid draft, got %v", err)
	}

	zeroPoints := valid
	zeroPoints.Points = 0
	var vErr *ValidationError
	if err := zeroPoints.Validate(); !errors.As(err, &vErr) || vErr.Field != "points" {
		t.Fatalf("expected points error, got %v", err)
	}

	blankOption := valid
	blankOption.Options = []OptionDraft{{Text: "", Order: 1}}
	if err := blankOption.Validate(); !errors.As(err, &vErr) || !strings.HasPrefix(vErr.Field, "options") {
		t.Fatalf("expected option error, got %v", err)
	}

	text := QuestionDraft{Text: "Capital of France?", Type: QuestionFreeText, Points: 3, Order: 2}
	if err := text.Validate(); !errors.As(err, &vErr) || vErr.Field != "correct_answer_text" {
		t.Fatalf("expected correct answer error, got %v", err)
	}
	text.CorrectAnswerText = "Paris"
	if err := text.Validate(); err != nil {
		t.Fatalf("expected valid text draft, got %v", err)
	}

	badType := valid
	badType.Type = "essay"
	if err := badType.Validate(); !errors.As(err, &vErr) || vErr.Field != "question_type" {
		t.Fatalf("expected type error, got %v", err)
	}
}
