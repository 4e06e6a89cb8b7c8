package auth

import (
	"net/http"

	"agenda.xdoubleu.com/internal/models"
)

// Service guards the routes of every app. Access answers with 401 when no
// user is signed in, TemplateAccess renders the sign-in page instead.
type Service interface {
	Access(next http.HandlerFunc) http.HandlerFunc
	TemplateAccess(next http.HandlerFunc) http.HandlerFunc
	GetAllUsers() ([]models.User, error)
	SignOut(accessToken string) (*http.Cookie, *http.Cookie, error)
}
