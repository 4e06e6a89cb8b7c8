package mocks

import (
	"context"
	"net/http"

	"agenda.xdoubleu.com/internal/auth"
	"agenda.xdoubleu.com/internal/constants"
	"agenda.xdoubleu.com/internal/models"
)

func NewMockedAuthService(userID string) auth.Service {
	return &MockedAuthService{
		user: models.User{
			ID:    userID,
			Email: "owner@agenda.xdoubleu.com",
		},
	}
}

// MockedAuthService lets every request through as the configured user.
type MockedAuthService struct {
	user models.User
}

func (m *MockedAuthService) withUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), constants.UserContextKey, m.user)
		next(w, r.WithContext(ctx))
	}
}

func (m *MockedAuthService) Access(next http.HandlerFunc) http.HandlerFunc {
	return m.withUser(next)
}

func (m *MockedAuthService) TemplateAccess(next http.HandlerFunc) http.HandlerFunc {
	return m.withUser(next)
}

func (m *MockedAuthService) GetAllUsers() ([]models.User, error) {
	return []models.User{m.user}, nil
}

func (m *MockedAuthService) SignOut(_ string) (*http.Cookie, *http.Cookie, error) {
	return nil, nil, nil
}
