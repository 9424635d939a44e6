package http

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"quizdesk/internal/app"
)

// Console is the server-rendered front-end. It serves one operator, so the
// token store and the authoring view are shared by every request; mu
// serialises access to the view.
type Console struct {
	tokens app.TokenStore
	auth   *app.Auth
	guard  app.Guard
	admin  app.AdminGateway
	public app.PublicGateway

	mu   sync.Mutex
	view *app.AuthoringView
}

func NewConsole(tokens app.TokenStore, admin app.AdminGateway, public app.PublicGateway) *Console {
	return &Console{
		tokens: tokens,
		auth:   app.NewAuth(tokens, admin),
		guard:  app.NewGuard(tokens),
		admin:  admin,
		public: public,
		view:   app.NewAuthoringView(admin),
	}
}

// Routes builds the console router.
func (c *Console) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get(app.PathLanding, c.landing)
	r.Get(app.PathLogin, c.loginForm)
	r.Post(app.PathLogin, c.login)
	r.Post("/admin/logout", c.logout)

	r.Group(func(r chi.Router) {
		r.Use(c.requireToken)
		r.Get(app.PathAdmin, c.dashboard)
		r.Post("/admin/quizzes/new", c.newQuiz)
		r.Post("/admin/quizzes/{quizID}/select", c.selectQuiz)
		r.Post("/admin/quizzes/{quizID}/edit", c.editQuiz)
		r.Post("/admin/quizzes/{quizID}/delete", c.deleteQuiz)
		r.Post("/admin/quiz-form", c.quizForm)
		r.Post("/admin/questions/new", c.newQuestion)
		r.Post("/admin/questions/{questionID}/edit", c.editQuestion)
		r.Post("/admin/questions/{questionID}/delete", c.deleteQuestion)
		r.Post("/admin/question-form", c.questionForm)
	})

	r.Get("/quiz/{quizID}", c.takeQuiz)
	r.Post("/quiz/{quizID}", c.submitQuiz)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, app.PathLanding, http.StatusSeeOther)
	})
	return r
}

// requireToken lets protected paths through only while a token is stored.
func (c *Console) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if target, ok := c.guard.Allow(r.Context(), r.URL.Path); !ok {
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (c *Console) landing(w http.ResponseWriter, r *http.Request) {
	render(w, "landing", pageBase{Notice: takeNotice(w, r)})
}
