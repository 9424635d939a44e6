package http

import (
	"net/http"

	"quizdesk/internal/app"
)

type loginPage struct {
	pageBase
	Username string
}

func (c *Console) loginForm(w http.ResponseWriter, r *http.Request) {
	render(w, "login", loginPage{pageBase: pageBase{Notice: takeNotice(w, r)}})
}

func (c *Console) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	username := r.PostForm.Get("username")
	if err := c.auth.Login(r.Context(), username, r.PostForm.Get("password")); err != nil {
		fail(w, r, err, "Login failed. Please check your credentials.", app.PathLogin)
		return
	}

	c.mu.Lock()
	c.view = app.NewAuthoringView(c.admin)
	c.mu.Unlock()
	http.Redirect(w, r, app.PathAdmin, http.StatusSeeOther)
}

func (c *Console) logout(w http.ResponseWriter, r *http.Request) {
	if err := c.auth.Logout(r.Context()); err != nil {
		fail(w, r, err, "Logout failed", app.PathAdmin)
		return
	}
	http.Redirect(w, r, app.PathLogin, http.StatusSeeOther)
}
