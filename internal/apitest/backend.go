// Package apitest provides an in-memory quiz backend speaking the same REST
// dialect as the real service. Tests point gateways and consoles at it.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"quizdesk/internal/domain"
)

// Admin credentials accepted by the fake login endpoint.
const (
	AdminUsername = "admin"
	AdminPassword = "admin"
)

// Backend holds quizzes in memory and records every request it serves.
type Backend struct {
	mu       sync.Mutex
	secret   []byte
	quizzes  map[string]*domain.Quiz
	order    []string
	requests []string
	now      func() time.Time
}

func New() *Backend {
	return &Backend{
		secret:  []byte(uuid.NewString()),
		quizzes: map[string]*domain.Quiz{},
		now:     time.Now,
	}
}

// Start serves the backend on a test server closed with the test.
func (b *Backend) Start(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(b.Handler())
	t.Cleanup(srv.Close)
	return srv
}

// Handler exposes the REST routes.
func (b *Backend) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(b.record)

	r.Post("/api/auth/login", b.login)
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(b.requireToken)
		r.Get("/quizzes", b.listQuizzes)
		r.Post("/quizzes", b.createQuiz)
		r.Route("/quizzes/{quizID}", func(r chi.Router) {
			r.Get("/", b.getQuiz)
			r.Put("/", b.updateQuiz)
			r.Delete("/", b.deleteQuiz)
			r.Post("/questions", b.createQuestion)
		})
		r.Put("/questions/{questionID}", b.updateQuestion)
		r.Delete("/questions/{questionID}", b.deleteQuestion)
	})
	r.Get("/api/public/quizzes/{quizID}", b.publicQuiz)
	r.Post("/api/public/quizzes/{quizID}/submit", b.submit)
	return r
}

// IssueToken mints a token the backend accepts until ttl passes.
func (b *Backend) IssueToken(subject string, ttl time.Duration) string {
	now := b.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.secret)
	if err != nil {
		panic(err)
	}
	return signed
}

// RevokeTokens invalidates every token issued so far.
func (b *Backend) RevokeTokens() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.secret = []byte(uuid.NewString())
}

// Requests returns "METHOD /path" for every request served, in order.
func (b *Backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

// SeedQuiz stores a quiz with questions built from drafts and returns the
// admin view of it.
func (b *Backend) SeedQuiz(title string, drafts ...domain.QuestionDraft) domain.Quiz {
	b.mu.Lock()
	defer b.mu.Unlock()
	q := b.insertQuiz(domain.QuizDraft{Title: title})
	for _, d := range drafts {
		q.Questions = append(q.Questions, newQuestion(q.ID, d))
	}
	return cloneQuiz(*q)
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, r.Method+" "+r.URL.Path)
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		b.mu.Lock()
		secret := b.secret
		b.mu.Unlock()
		_, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid form")
		return
	}
	if gt := r.PostForm.Get("grant_type"); gt != "" && gt != "password" {
		writeDetail(w, http.StatusBadRequest, "unsupported grant_type")
		return
	}
	if r.PostForm.Get("username") != AdminUsername || r.PostForm.Get("password") != AdminPassword {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeDetail(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": b.IssueToken(AdminUsername, 30*time.Minute),
		"token_type":   "bearer",
	})
}

func (b *Backend) listQuizzes(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.Quiz, 0, len(b.order))
	for i := len(b.order) - 1; i >= 0; i-- {
		q := *b.quizzes[b.order[i]]
		q.Questions = nil
		out = append(out, q)
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) getQuiz(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	q, ok := b.quizzes[chi.URLParam(r, "quizID")]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Quiz not found")
		return
	}
	writeJSON(w, http.StatusOK, cloneQuiz(*q))
}

func (b *Backend) createQuiz(w http.ResponseWriter, r *http.Request) {
	var draft domain.QuizDraft
	if !decode(w, r, &draft) {
		return
	}
	if strings.TrimSpace(draft.Title) == "" {
		writeMissing(w, "title")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	q := b.insertQuiz(draft)
	writeJSON(w, http.StatusCreated, cloneQuiz(*q))
}

func (b *Backend) updateQuiz(w http.ResponseWriter, r *http.Request) {
	var draft domain.QuizDraft
	if !decode(w, r, &draft) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	q, ok := b.quizzes[chi.URLParam(r, "quizID")]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Quiz not found")
		return
	}
	if draft.Title != "" {
		q.Title = draft.Title
	}
	q.Description = draft.Description
	q.UpdatedAt = b.now().UTC()
	out := cloneQuiz(*q)
	out.Questions = nil
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) deleteQuiz(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := chi.URLParam(r, "quizID")
	if _, ok := b.quizzes[id]; !ok {
		writeDetail(w, http.StatusNotFound, "Quiz not found")
		return
	}
	delete(b.quizzes, id)
	for i, qid := range b.order {
		if qid == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) createQuestion(w http.ResponseWriter, r *http.Request) {
	var draft domain.QuestionDraft
	if !decode(w, r, &draft) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	q, ok := b.quizzes[chi.URLParam(r, "quizID")]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Quiz not found")
		return
	}
	if msg := checkQuestion(draft); msg != "" {
		writeDetail(w, http.StatusBadRequest, msg)
		return
	}
	question := newQuestion(q.ID, draft)
	q.Questions = append(q.Questions, question)
	writeJSON(w, http.StatusCreated, question)
}

func (b *Backend) updateQuestion(w http.ResponseWriter, r *http.Request) {
	var draft domain.QuestionDraft
	if !decode(w, r, &draft) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	id := chi.URLParam(r, "questionID")
	q, idx := b.findQuestion(id)
	if q == nil {
		writeDetail(w, http.StatusNotFound, "Question not found")
		return
	}
	if msg := checkQuestion(draft); msg != "" {
		writeDetail(w, http.StatusBadRequest, msg)
		return
	}
	updated := newQuestion(q.ID, draft)
	updated.ID = id
	q.Questions[idx] = updated
	writeJSON(w, http.StatusOK, updated)
}

func (b *Backend) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	q, idx := b.findQuestion(chi.URLParam(r, "questionID"))
	if q == nil {
		writeDetail(w, http.StatusNotFound, "Question not found")
		return
	}
	q.Questions = append(q.Questions[:idx], q.Questions[idx+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) publicQuiz(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	q, ok := b.quizzes[chi.URLParam(r, "quizID")]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Quiz not found")
		return
	}
	out := cloneQuiz(*q)
	for i := range out.Questions {
		out.Questions[i].CorrectAnswerText = ""
		for j := range out.Questions[i].Options {
			out.Questions[i].Options[j].IsCorrect = false
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) submit(w http.ResponseWriter, r *http.Request) {
	var sub domain.Submission
	if !decode(w, r, &sub) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	q, ok := b.quizzes[chi.URLParam(r, "quizID")]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Quiz not found")
		return
	}
	if len(sub.Answers) != len(q.Questions) {
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("Expected %d answers, got %d", len(q.Questions), len(sub.Answers)))
		return
	}
	result, ok := grade(*q, sub)
	if !ok {
		writeDetail(w, http.StatusBadRequest, "Submitted answers do not match quiz questions")
		return
	}
	result.AttemptID = uuid.NewString()
	result.SubmittedAt = b.now().UTC()
	writeJSON(w, http.StatusCreated, result)
}

func (b *Backend) insertQuiz(draft domain.QuizDraft) *domain.Quiz {
	now := b.now().UTC()
	q := &domain.Quiz{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		Description: draft.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	b.quizzes[q.ID] = q
	b.order = append(b.order, q.ID)
	return q
}

func (b *Backend) findQuestion(id string) (*domain.Quiz, int) {
	for _, q := range b.quizzes {
		for i, question := range q.Questions {
			if question.ID == id {
				return q, i
			}
		}
	}
	return nil, -1
}

func newQuestion(quizID string, d domain.QuestionDraft) domain.Question {
	q := domain.Question{
		ID:                uuid.NewString(),
		QuizID:            quizID,
		Text:              d.Text,
		Type:              d.Type,
		Points:            d.Points,
		Order:             d.Order,
		CorrectAnswerText: d.CorrectAnswerText,
		Options:           []domain.Option{},
	}
	for _, o := range d.Options {
		q.Options = append(q.Options, domain.Option{
			ID:        uuid.NewString(),
			Text:      o.Text,
			IsCorrect: o.IsCorrect,
			Order:     o.Order,
		})
	}
	return q
}

func checkQuestion(d domain.QuestionDraft) string {
	switch {
	case d.Type.IsChoice():
		if len(d.Options) < 2 {
			return fmt.Sprintf("%s questions must have at least 2 options", d.Type)
		}
		if domain.CorrectCount(d.Options) != 1 {
			return fmt.Sprintf("%s questions must have exactly one correct answer", d.Type)
		}
	case d.Type == domain.QuestionFreeText:
		if d.CorrectAnswerText == "" {
			return "Text questions must have a correct_answer_text"
		}
	}
	return ""
}

func cloneQuiz(q domain.Quiz) domain.Quiz {
	questions := make([]domain.Question, len(q.Questions))
	for i, question := range q.Questions {
		question.Options = append([]domain.Option{}, question.Options...)
		questions[i] = question
	}
	sort.SliceStable(questions, func(i, j int) bool { return questions[i].Order < questions[j].Order })
	q.Questions = questions
	return q
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body"}, "msg": "JSON decode error", "type": "json_invalid"}},
		})
		return false
	}
	return true
}

func writeMissing(w http.ResponseWriter, field string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"detail": []map[string]any{{"loc": []string{"body", field}, "msg": "Field required", "type": "missing"}},
	})
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
