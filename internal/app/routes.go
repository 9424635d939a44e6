package app

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Client-visible paths.
const (
	PathLanding = "/"
	PathLogin   = "/admin/login"
	PathAdmin   = "/admin"
	pathQuiz    = "/quiz/"
)

// QuizPath is the shareable link for taking a quiz.
func QuizPath(id string) string {
	return pathQuiz + id
}

// Protected reports whether path needs a stored token to render.
func Protected(path string) bool {
	if path == PathLogin || strings.HasPrefix(path, PathLogin+"/") {
		return false
	}
	return path == PathAdmin || strings.HasPrefix(path, PathAdmin+"/")
}

// Guard decides whether a protected view may render. It never caches.
type Guard struct {
	tokens TokenStore
}

func NewGuard(tokens TokenStore) Guard {
	return Guard{tokens: tokens}
}

// Allow returns ok when path may render, otherwise the path to redirect to.
func (g Guard) Allow(ctx context.Context, path string) (string, bool) {
	if !Protected(path) || g.tokens.IsPresent(ctx) {
		return "", true
	}
	return PathLogin, false
}

// AuthExpiredRedirect picks the navigation after an authorization failure
// observed while on current. Already being on the login view means no redirect.
func AuthExpiredRedirect(current string) (string, bool) {
	if current == PathLogin {
		return "", false
	}
	return PathLogin, true
}

// ValidQuizID reports whether id has the backend's identifier shape.
func ValidQuizID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
