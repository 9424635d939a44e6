package app

import (
	"fmt"
	"io"
	"text/template"

	"quizdesk/internal/domain"
)

// ScorecardRow is one rendered per-question outcome.
type ScorecardRow struct {
	Number       int
	QuestionText string
	Correct      bool
	Verdict      string
	Points       string
}

// Scorecard is a Result prepared for display.
type Scorecard struct {
	Percentage   string
	Score        string
	CorrectCount int
	Rows         []ScorecardRow
}

// NewScorecard formats a backend result. It adds no scoring of its own.
func NewScorecard(r domain.Result) Scorecard {
	sc := Scorecard{
		Percentage: fmt.Sprintf("%.1f%%", r.Percentage),
		Score:      fmt.Sprintf("Score: %d / %d points", r.Score, r.TotalPoints),
		Rows:       make([]ScorecardRow, 0, len(r.Responses)),
	}
	for i, resp := range r.Responses {
		verdict := "✗ Incorrect"
		if resp.IsCorrect {
			verdict = "✓ Correct"
			sc.CorrectCount++
		}
		sc.Rows = append(sc.Rows, ScorecardRow{
			Number:       i + 1,
			QuestionText: resp.QuestionText,
			Correct:      resp.IsCorrect,
			Verdict:      verdict,
			Points:       fmt.Sprintf("%d / %d points", resp.PointsEarned, resp.QuestionPoints),
		})
	}
	return sc
}

var scorecardText = template.Must(template.New("scorecard").Parse(`Quiz Completed!
{{.Percentage}}
{{.Score}}
{{.CorrectCount}} of {{len .Rows}} correct
{{range .Rows}}
{{.Number}}. {{.QuestionText}}
   {{.Verdict}}  {{.Points}}
{{- end}}
`))

// WriteText renders the scorecard for a terminal.
func (s Scorecard) WriteText(w io.Writer) error {
	return scorecardText.Execute(w, s)
}
