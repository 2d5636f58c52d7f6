// Package backoffice wraps the brokerage backend's account, payment, KYC,
// ticketing, analytics, and admin endpoints.
package backoffice

import (
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"mt5-backoffice/internal/api"
	apperrors "mt5-backoffice/internal/errors"
)

// Service exposes the backend surface beyond authentication. All calls
// assume the shared api.Client already carries a bearer token; the backend
// rejects unauthenticated calls with 401.
type Service struct {
	client   *api.Client
	logger   zerolog.Logger
	validate *validator.Validate
}

// NewService creates a backoffice service on top of an authenticated client.
func NewService(client *api.Client, logger zerolog.Logger) *Service {
	return &Service{
		client:   client,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// checkPayload validates an outgoing payload before it reaches the wire,
// so obviously malformed requests fail fast with a local message.
func (s *Service) checkPayload(payload interface{}) error {
	err := s.validate.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if apperrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperrors.NewValidationError(fe.Field(), fe.Value(), "failed "+fe.Tag()+" check")
	}
	return apperrors.Wrap(apperrors.ErrInputValidation, err.Error())
}

// statusMessage is the generic {"message": ...} acknowledgement many
// endpoints return.
type statusMessage struct {
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}
