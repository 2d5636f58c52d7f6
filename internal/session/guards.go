package session

import (
	apperrors "mt5-backoffice/internal/errors"
	"mt5-backoffice/internal/models"
)

// RequireAuth returns the authenticated profile, or ErrNotAuthenticated
// when no user is hydrated. Commands behind it behave like pages behind a
// protected route: unauthenticated callers are turned back to login.
func (m *Manager) RequireAuth() (*models.Profile, error) {
	user := m.CurrentUser()
	if user == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	return user, nil
}

// RequireAdmin returns the authenticated profile only when it carries the
// admin role. Authenticated non-admins get ErrForbidden, the equivalent
// of the admin route redirecting them back to the dashboard.
func (m *Manager) RequireAdmin() (*models.Profile, error) {
	user, err := m.RequireAuth()
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	return user, nil
}
