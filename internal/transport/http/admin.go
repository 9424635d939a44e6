package http

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"quizdesk/internal/app"
	"quizdesk/internal/domain"
)

type adminPage struct {
	pageBase
	Error         string
	Mode          string
	Quizzes       []domain.Quiz
	Selected      *domain.Quiz
	ShareURL      string
	QuizForm      *app.QuizForm
	QuestionForm  *app.QuestionForm
	QuestionTypes []domain.QuestionType
}

func (c *Console) dashboard(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	page := adminPage{pageBase: pageBase{Notice: takeNotice(w, r)}, QuestionTypes: domain.QuestionTypes}
	if !c.view.Loaded() {
		if err := c.view.Load(r.Context()); err != nil {
			if errors.Is(err, domain.ErrAuthExpired) {
				fail(w, r, err, "", app.PathLogin)
				return
			}
			page.Error = domain.Message(err, "Failed to load quizzes")
		}
	}

	page.Mode = c.view.Mode().String()
	page.Quizzes = c.view.Quizzes()
	if q, ok := c.view.Selected(); ok {
		page.Selected = &q
		page.ShareURL = shareURL(r, q.ID)
	}
	page.QuizForm = c.view.QuizForm()
	page.QuestionForm = c.view.QuestionForm()
	render(w, "admin", page)
}

func (c *Console) newQuiz(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.OpenNewQuiz()
	backToAdmin(w, r)
}

func (c *Console) selectQuiz(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.view.Select(r.Context(), chi.URLParam(r, "quizID")); err != nil {
		fail(w, r, err, "Failed to load quiz details", app.PathAdmin)
		return
	}
	backToAdmin(w, r)
}

func (c *Console) editQuiz(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := chi.URLParam(r, "quizID")
	if q, ok := c.view.Selected(); !ok || q.ID != id {
		if err := c.view.Select(r.Context(), id); err != nil {
			fail(w, r, err, "Failed to load quiz details", app.PathAdmin)
			return
		}
	}
	if err := c.view.OpenEditQuiz(); err != nil {
		fail(w, r, err, "Failed to open quiz", app.PathAdmin)
		return
	}
	backToAdmin(w, r)
}

func (c *Console) deleteQuiz(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.view.DeleteQuiz(r.Context(), chi.URLParam(r, "quizID")); err != nil {
		fail(w, r, err, "Failed to delete quiz", app.PathAdmin)
		return
	}
	backToAdmin(w, r)
}

func (c *Console) quizForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if r.PostForm.Get("action") == "cancel" {
		c.view.CloseQuizForm()
		backToAdmin(w, r)
		return
	}
	draft := domain.QuizDraft{
		Title:       strings.TrimSpace(r.PostForm.Get("title")),
		Description: r.PostForm.Get("description"),
	}
	if form := c.view.QuizForm(); form != nil {
		form.Draft = draft
	}
	if err := c.view.SaveQuiz(r.Context(), draft); err != nil {
		fail(w, r, err, "Failed to save quiz", app.PathAdmin)
		return
	}
	backToAdmin(w, r)
}

func (c *Console) newQuestion(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.view.OpenNewQuestion(); err != nil {
		fail(w, r, err, "Select a quiz first", app.PathAdmin)
		return
	}
	backToAdmin(w, r)
}

func (c *Console) editQuestion(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.view.OpenEditQuestion(chi.URLParam(r, "questionID")); err != nil {
		fail(w, r, err, "Question not found", app.PathAdmin)
		return
	}
	backToAdmin(w, r)
}

func (c *Console) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.view.DeleteQuestion(r.Context(), chi.URLParam(r, "questionID")); err != nil {
		fail(w, r, err, "Failed to delete question", app.PathAdmin)
		return
	}
	backToAdmin(w, r)
}

// questionForm applies the posted fields to the open form first, so edits
// survive option add/remove round trips, then runs the requested action.
func (c *Console) questionForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	form := c.view.QuestionForm()
	if form == nil {
		backToAdmin(w, r)
		return
	}
	action := r.PostForm.Get("action")
	if action == "cancel" {
		c.view.CloseQuestionForm()
		backToAdmin(w, r)
		return
	}
	applyQuestionFields(form, r.PostForm)

	switch {
	case action == "save":
		if err := c.view.SaveQuestion(r.Context()); err != nil {
			fail(w, r, err, "Failed to save question", app.PathAdmin)
			return
		}
	case action == "add-option":
		form.AddOption()
	case strings.HasPrefix(action, "remove-option:"):
		if i, err := strconv.Atoi(strings.TrimPrefix(action, "remove-option:")); err == nil {
			form.RemoveOption(i)
		}
	}
	backToAdmin(w, r)
}

func applyQuestionFields(form *app.QuestionForm, values url.Values) {
	form.Text = values.Get("question_text")
	for i, text := range values["option_text"] {
		form.SetOptionText(i, text)
	}
	if t := domain.QuestionType(values.Get("question_type")); t != "" && t != form.Type {
		form.SetType(t)
	}
	form.Points = atoi(values.Get("points"))
	form.Order = atoi(values.Get("order"))
	if raw := values.Get("correct"); raw != "" {
		if i, err := strconv.Atoi(raw); err == nil {
			form.MarkCorrect(i)
		}
	}
	if values.Has("correct_answer_text") {
		form.CorrectAnswerText = values.Get("correct_answer_text")
	}
}

func atoi(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

func backToAdmin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, app.PathAdmin, http.StatusSeeOther)
}

func shareURL(r *http.Request, quizID string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + app.QuizPath(quizID)
}
