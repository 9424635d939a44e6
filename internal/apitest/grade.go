package apitest

import (
	"math"
	"strings"

	"quizdesk/internal/domain"
)

// grade scores a submission the way the real backend does: choice answers
// must name the correct option, text answers compare trimmed and
// case-insensitively. ok is false when the answers do not cover exactly the
// quiz's questions.
func grade(q domain.Quiz, sub domain.Submission) (domain.Result, bool) {
	byID := make(map[string]domain.Question, len(q.Questions))
	total := 0
	for _, question := range q.Questions {
		byID[question.ID] = question
		total += question.Points
	}

	if len(sub.Answers) != len(q.Questions) {
		return domain.Result{}, false
	}
	seen := make(map[string]bool, len(sub.Answers))
	result := domain.Result{QuizID: q.ID, TotalPoints: total}
	for _, a := range sub.Answers {
		question, ok := byID[a.QuestionID]
		if !ok || seen[a.QuestionID] {
			return domain.Result{}, false
		}
		seen[a.QuestionID] = true

		correct := false
		if question.Type.IsChoice() {
			if a.SelectedOptionID != nil {
				for _, o := range question.Options {
					if o.ID == *a.SelectedOptionID && o.IsCorrect {
						correct = true
					}
				}
			}
		} else if a.TextResponse != "" && question.CorrectAnswerText != "" {
			correct = strings.EqualFold(strings.TrimSpace(a.TextResponse), strings.TrimSpace(question.CorrectAnswerText))
		}

		earned := 0
		if correct {
			earned = question.Points
			result.Score += earned
		}
		result.Responses = append(result.Responses, domain.QuestionOutcome{
			QuestionID:     question.ID,
			QuestionText:   question.Text,
			IsCorrect:      correct,
			PointsEarned:   earned,
			QuestionPoints: question.Points,
		})
	}
	if total > 0 {
		result.Percentage = math.Round(float64(result.Score)/float64(total)*10000) / 100
	}
	return result, true
}
