package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quizdesk/internal/apitest"
	"quizdesk/internal/domain"
	"quizdesk/internal/infra/memory"
)

func TestLoginSendsFormEncodedPasswordGrant(t *testing.T) {
	var gotContentType, gotGrant, gotUser, gotPass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotContentType = r.Header.Get("Content-Type")
		_ = r.ParseForm()
		gotGrant = r.PostForm.Get("grant_type")
		gotUser = r.PostForm.Get("username")
		gotPass = r.PostForm.Get("password")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"tok-123","token_type":"bearer"}`)
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL}, memory.NewTokenStore())
	token, err := client.Login(context.Background(), "admin", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token != "tok-123" {
		t.Fatalf("expected access token, got %q", token)
	}
	if gotContentType != "application/x-www-form-urlencoded" {
		t.Fatalf("expected form encoding, got %q", gotContentType)
	}
	if gotGrant != "password" || gotUser != "admin" || gotPass != "s3cret" {
		t.Fatalf("unexpected form grant=%q user=%q pass=%q", gotGrant, gotUser, gotPass)
	}
}

func TestLoginRejectedCarriesBackendDetail(t *testing.T) {
	srv := apitest.New().Start(t)
	client := New(Config{BaseURL: srv.URL}, memory.NewTokenStore())

	_, err := client.Login(context.Background(), "admin", "wrong")
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected api error, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Detail != "Incorrect username or password" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
}

func TestAdminCallsCarryBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	tokens := memory.NewTokenStore()
	_ = tokens.Set(context.Background(), "tok-abc")
	client := New(Config{BaseURL: srv.URL}, tokens)

	if _, err := client.ListQuizzes(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}

	_ = tokens.Clear(context.Background())
	if _, err := client.ListQuizzes(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no header without token, got %q", gotAuth)
	}
}

func TestUnauthorizedClearsStoredToken(t *testing.T) {
	backend := apitest.New()
	srv := backend.Start(t)
	tokens := memory.NewTokenStore()
	client := New(Config{BaseURL: srv.URL}, tokens)
	ctx := context.Background()

	_ = tokens.Set(ctx, backend.IssueToken("admin", time.Minute))
	if _, err := client.ListQuizzes(ctx); err != nil {
		t.Fatalf("list with valid token: %v", err)
	}

	backend.RevokeTokens()
	_, err := client.GetQuiz(ctx, "6f1c1c5e-8a0b-4d7e-9a4f-2b5f3c1d9e01")
	if !errors.Is(err, domain.ErrAuthExpired) {
		t.Fatalf("expected auth expired, got %v", err)
	}
	if tokens.IsPresent(ctx) {
		t.Fatalf("expected token cleared after 401")
	}
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	backend := apitest.New()
	srv := backend.Start(t)
	client := New(Config{BaseURL: srv.URL}, memory.NewTokenStore())

	_, err := client.GetPublicQuiz(context.Background(), "6f1c1c5e-8a0b-4d7e-9a4f-2b5f3c1d9e01")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if msg := domain.Message(err, "fallback"); msg != "Quiz not found" {
		t.Fatalf("expected backend detail, got %q", msg)
	}
}

func TestTransportFailureWrapsSentinel(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := New(Config{BaseURL: url, Timeout: time.Second}, memory.NewTokenStore())
	_, err := client.ListQuizzes(context.Background())
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if _, err := client.Login(context.Background(), "admin", "admin"); !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected transport error on login, got %v", err)
	}
}

func TestAdminLifecycleAgainstBackend(t *testing.T) {
	srv := apitest.New().Start(t)
	tokens := memory.NewTokenStore()
	client := New(Config{BaseURL: srv.URL + "/"}, tokens)
	ctx := context.Background()

	token, err := client.Login(ctx, apitest.AdminUsername, apitest.AdminPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	_ = tokens.Set(ctx, token)

	quiz, err := client.CreateQuiz(ctx, domain.QuizDraft{Title: "Capitals", Description: "Europe"})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	if quiz.ID == "" || quiz.Title != "Capitals" {
		t.Fatalf("unexpected quiz %+v", quiz)
	}

	question, err := client.CreateQuestion(ctx, quiz.ID, domain.QuestionDraft{
		Text: "Capital of France?", Type: domain.QuestionMultipleChoice, Points: 2, Order: 1,
		Options: []domain.OptionDraft{
			{Text: "Paris", IsCorrect: true, Order: 1},
			{Text: "Lyon", Order: 2},
		},
	})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	if len(question.Options) != 2 || question.Options[0].ID == "" {
		t.Fatalf("expected options with ids, got %+v", question.Options)
	}

	_, err = client.CreateQuestion(ctx, quiz.ID, domain.QuestionDraft{
		Text: "Pick", Type: domain.QuestionMultipleChoice, Points: 1, Order: 2,
		Options: []domain.OptionDraft{{Text: "only", IsCorrect: true, Order: 1}},
	})
	if msg := domain.Message(err, ""); msg != "mcq questions must have at least 2 options" {
		t.Fatalf("expected backend validation detail, got %q (%v)", msg, err)
	}

	if _, err := client.UpdateQuiz(ctx, quiz.ID, domain.QuizDraft{Title: "World capitals"}); err != nil {
		t.Fatalf("update quiz: %v", err)
	}
	updated, err := client.UpdateQuestion(ctx, question.ID, domain.QuestionDraft{
		Text: "Capital of Spain?", Type: domain.QuestionFreeText, Points: 1, Order: 1, CorrectAnswerText: "Madrid",
	})
	if err != nil {
		t.Fatalf("update question: %v", err)
	}
	if updated.ID != question.ID || updated.Type != domain.QuestionFreeText {
		t.Fatalf("unexpected updated question %+v", updated)
	}

	full, err := client.GetQuiz(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if full.Title != "World capitals" || len(full.Questions) != 1 || full.Questions[0].CorrectAnswerText != "Madrid" {
		t.Fatalf("unexpected quiz detail %+v", full)
	}

	if err := client.DeleteQuestion(ctx, question.ID); err != nil {
		t.Fatalf("delete question: %v", err)
	}
	if err := client.DeleteQuiz(ctx, quiz.ID); err != nil {
		t.Fatalf("delete quiz: %v", err)
	}
	quizzes, err := client.ListQuizzes(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(quizzes) != 0 {
		t.Fatalf("expected empty list, got %+v", quizzes)
	}
}

func TestValidationListDetailIsFlattened(t *testing.T) {
	backend := apitest.New()
	srv := backend.Start(t)
	tokens := memory.NewTokenStore()
	_ = tokens.Set(context.Background(), backend.IssueToken("admin", time.Minute))
	client := New(Config{BaseURL: srv.URL}, tokens)

	_, err := client.CreateQuiz(context.Background(), domain.QuizDraft{})
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
	if apiErr.Detail != "title: Field required" {
		t.Fatalf("unexpected detail %q", apiErr.Detail)
	}
}

func TestSubmitScoresThroughBackend(t *testing.T) {
	backend := apitest.New()
	var drafts []domain.QuestionDraft
	for i := 1; i <= 5; i++ {
		drafts = append(drafts, domain.QuestionDraft{
			Text: fmt.Sprintf("Q%d", i), Type: domain.QuestionTrueFalse, Points: 1, Order: i,
			Options: []domain.OptionDraft{{Text: "True", IsCorrect: true, Order: 1}, {Text: "False", Order: 2}},
		})
	}
	seeded := backend.SeedQuiz("Five", drafts...)
	srv := backend.Start(t)
	client := New(Config{BaseURL: srv.URL}, memory.NewTokenStore())
	ctx := context.Background()

	public, err := client.GetPublicQuiz(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("get public quiz: %v", err)
	}
	for _, q := range public.Questions {
		for _, o := range q.Options {
			if o.IsCorrect {
				t.Fatalf("public quiz must not reveal correct options")
			}
		}
	}

	cases := []struct {
		pick    string
		score   int
		percent float64
	}{
		{pick: "True", score: 5, percent: 100.0},
		{pick: "False", score: 0, percent: 0.0},
	}
	for _, tc := range cases {
		var answers []domain.Answer
		for _, q := range public.Questions {
			for _, o := range q.Options {
				if o.Text == tc.pick {
					id := o.ID
					answers = append(answers, domain.Answer{QuestionID: q.ID, SelectedOptionID: &id})
				}
			}
		}
		result, err := client.SubmitQuiz(ctx, seeded.ID, domain.Submission{Answers: answers})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if result.Score != tc.score || result.TotalPoints != 5 || result.Percentage != tc.percent {
			t.Fatalf("pick %s: unexpected result %+v", tc.pick, result)
		}
		if len(result.Responses) != 5 {
			t.Fatalf("expected 5 responses, got %d", len(result.Responses))
		}
	}
}

func TestErrorDetailShapes(t *testing.T) {
	cases := map[string]string{
		`{"detail":"Quiz not found"}`: "Quiz not found",
		`{"detail":[{"loc":["body","points"],"msg":"Input should be greater than 0"},{"loc":["body"],"msg":"bad"}]}`: "points: Input should be greater than 0; bad",
		`not json`:       "",
		`{"other":"x"}`:  "",
		`{"detail":42}`:  "",
	}
	for body, want := range cases {
		if got := errorDetail([]byte(body)); got != want {
			t.Fatalf("errorDetail(%s) = %q, want %q", body, got, want)
		}
	}
}
