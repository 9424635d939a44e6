package domain

import "time"

// QuestionType is the wire value the backend uses for a question kind.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "mcq"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionFreeText       QuestionType = "text"
)

// IsChoice reports whether answers to this type select an option.
func (t QuestionType) IsChoice() bool {
	return t == QuestionMultipleChoice || t == QuestionTrueFalse
}

// Label is the human name shown next to a question.
func (t QuestionType) Label() string {
	switch t {
	case QuestionMultipleChoice:
		return "Multiple Choice"
	case QuestionTrueFalse:
		return "True/False"
	case QuestionFreeText:
		return "Text Answer"
	default:
		return string(t)
	}
}

// QuestionTypes lists the selectable types in form order.
var QuestionTypes = []QuestionType{QuestionMultipleChoice, QuestionTrueFalse, QuestionFreeText}

// Quiz is the client's transient copy of a backend quiz. The list endpoint
// leaves Questions empty.
type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Question belongs to exactly one quiz. CorrectAnswerText is only present in
// the admin form of text questions.
type Question struct {
	ID                string       `json:"id"`
	QuizID            string       `json:"quiz_id,omitempty"`
	Text              string       `json:"question_text"`
	Type              QuestionType `json:"question_type"`
	Points            int          `json:"points"`
	Order             int          `json:"order"`
	Options           []Option     `json:"options"`
	CorrectAnswerText string       `json:"correct_answer_text,omitempty"`
}

// Option is one selectable choice. IsCorrect is always false in the public form.
type Option struct {
	ID        string `json:"id"`
	Text      string `json:"option_text"`
	IsCorrect bool   `json:"is_correct"`
	Order     int    `json:"order"`
}

// QuizDraft is the payload for creating or updating a quiz.
type QuizDraft struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
}

// QuestionDraft is the payload for creating or updating a question.
type QuestionDraft struct {
	Text              string        `json:"question_text" validate:"required"`
	Type              QuestionType  `json:"question_type" validate:"required,oneof=mcq true_false text"`
	Points            int           `json:"points" validate:"min=1"`
	Order             int           `json:"order" validate:"min=1"`
	Options           []OptionDraft `json:"options,omitempty" validate:"dive"`
	CorrectAnswerText string        `json:"correct_answer_text,omitempty"`
}

// OptionDraft is one option inside a QuestionDraft.
type OptionDraft struct {
	Text      string `json:"option_text" validate:"required"`
	IsCorrect bool   `json:"is_correct"`
	Order     int    `json:"order"`
}

// AnswerKind names the answer field a respondent interaction sets.
type AnswerKind string

const (
	AnswerSelectedOption AnswerKind = "selected_option_id"
	AnswerTextResponse   AnswerKind = "text_response"
)

// Answer is the respondent's record for one question. Only one of the two
// payload fields is meaningful for a given question type.
type Answer struct {
	QuestionID       string  `json:"question_id"`
	SelectedOptionID *string `json:"selected_option_id"`
	TextResponse     string  `json:"text_response"`
}

// Submission is posted to the backend for scoring.
type Submission struct {
	UserName *string  `json:"user_name"`
	Answers  []Answer `json:"answers"`
}

// QuestionOutcome is the backend's verdict for one answered question.
type QuestionOutcome struct {
	QuestionID     string `json:"question_id"`
	QuestionText   string `json:"question_text"`
	IsCorrect      bool   `json:"is_correct"`
	PointsEarned   int    `json:"points_earned"`
	QuestionPoints int    `json:"question_points"`
}

// Result is returned by the backend after scoring a submission.
type Result struct {
	AttemptID   string            `json:"attempt_id"`
	QuizID      string            `json:"quiz_id"`
	Score       int               `json:"score"`
	TotalPoints int               `json:"total_points"`
	Percentage  float64           `json:"percentage"`
	SubmittedAt time.Time         `json:"submitted_at"`
	Responses   []QuestionOutcome `json:"responses"`
}
