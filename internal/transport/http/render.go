package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"quizdesk/internal/app"
	"quizdesk/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = parsePages("landing", "login", "admin", "take", "result")

func parsePages(names ...string) map[string]*template.Template {
	funcs := template.FuncMap{"inc": func(i int) int { return i + 1 }}
	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		out[name] = template.Must(template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/"+name+".html"))
	}
	return out
}

// pageBase carries what every page shows.
type pageBase struct {
	Notice string
}

func render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Error().Err(err).Str("page", name).Msg("render failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

const noticeCookie = "quizdesk_notice"

// setNotice queues a message for the next page rendered in this browser.
func setNotice(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     noticeCookie,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeNotice returns the queued message once and clears it.
func takeNotice(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(noticeCookie)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{Name: noticeCookie, Path: "/", MaxAge: -1})
	msg, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return msg
}

// fail is the single place action errors are turned into navigation. An
// authorization failure sends the operator to the login view, unless they
// are already there; anything else goes back with the error as a notice.
func fail(w http.ResponseWriter, r *http.Request, err error, fallback, back string) {
	if errors.Is(err, domain.ErrAuthExpired) {
		if target, ok := app.AuthExpiredRedirect(r.URL.Path); ok {
			log.Warn().Str("path", r.URL.Path).Msg("session expired")
			setNotice(w, "Session expired, please log in again")
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
	}
	log.Warn().Err(err).Str("path", r.URL.Path).Msg("action failed")
	setNotice(w, domain.Message(err, fallback))
	http.Redirect(w, r, back, http.StatusSeeOther)
}
