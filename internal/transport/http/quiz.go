package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"quizdesk/internal/app"
	"quizdesk/internal/domain"
)

type takeQuestion struct {
	domain.Question
	Selected     string
	TextResponse string
}

type takePage struct {
	pageBase
	Error     string
	Action    string
	Quiz      domain.Quiz
	UserName  string
	Questions []takeQuestion
}

type resultPage struct {
	pageBase
	Card app.Scorecard
}

func (c *Console) takeQuiz(w http.ResponseWriter, r *http.Request) {
	view, ok := c.openQuiz(w, r)
	if !ok {
		return
	}
	render(w, "take", newTakePage(r, view, ""))
}

// submitQuiz rebuilds the attempt from the posted form. A failed submit
// renders the form again with every answer kept.
func (c *Console) submitQuiz(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	view, ok := c.openQuiz(w, r)
	if !ok {
		return
	}
	view.SetUserName(r.PostForm.Get("user_name"))
	for _, q := range view.Quiz().Questions {
		value := r.PostForm.Get("q_" + q.ID)
		if value == "" {
			continue
		}
		kind := domain.AnswerTextResponse
		if q.Type.IsChoice() {
			kind = domain.AnswerSelectedOption
		}
		if err := view.SetAnswer(q.ID, kind, value); err != nil {
			log.Warn().Err(err).Str("question_id", q.ID).Msg("ignoring answer")
		}
	}

	result, err := view.Submit(r.Context())
	if err != nil {
		log.Warn().Err(err).Str("quiz_id", view.Quiz().ID).Msg("submit failed")
		render(w, "take", newTakePage(r, view, domain.Message(err, "Failed to submit quiz")))
		return
	}
	log.Info().Str("quiz_id", result.QuizID).Str("attempt_id", result.AttemptID).Msg("quiz submitted")
	render(w, "result", resultPage{Card: app.NewScorecard(result)})
}

// openQuiz loads the public quiz or sends the respondent home.
func (c *Console) openQuiz(w http.ResponseWriter, r *http.Request) (*app.TakingView, bool) {
	view := app.NewTakingView(c.public, chi.URLParam(r, "quizID"))
	if err := view.Load(r.Context()); err != nil {
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("quiz unavailable")
		setNotice(w, "Quiz not found")
		http.Redirect(w, r, app.PathLanding, http.StatusSeeOther)
		return nil, false
	}
	return view, true
}

func newTakePage(r *http.Request, view *app.TakingView, errMsg string) takePage {
	page := takePage{
		Error:    errMsg,
		Action:   r.URL.Path,
		Quiz:     view.Quiz(),
		UserName: view.UserName(),
	}
	for _, q := range view.Quiz().Questions {
		tq := takeQuestion{Question: q}
		if a, ok := view.Answer(q.ID); ok {
			if a.SelectedOptionID != nil {
				tq.Selected = *a.SelectedOptionID
			}
			tq.TextResponse = a.TextResponse
		}
		page.Questions = append(page.Questions, tq)
	}
	return page
}
