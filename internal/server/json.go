package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"kindbridge/internal/service"
	"kindbridge/pkg/types"
)

// jsonEnvelope is the small payload the AJAX-style endpoints return:
// respond, delete, mark-contacted, donate, confirm/reject donation.
type jsonEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Service) writeJSON(w http.ResponseWriter, success bool, message string) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(jsonEnvelope{Success: success, Message: message}); err != nil {
		s.logger.WithError(err).Error("failed to encode json envelope")
	}
}

// writeJSONError maps the error taxonomy onto user-facing messages.
// Unknown errors are logged and reported generically.
func (s *Service) writeJSONError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		for _, msg := range validationErr.Fields {
			s.writeJSON(w, false, msg)
			return
		}
		s.writeJSON(w, false, "Invalid input.")
	case errors.Is(err, types.ErrInvalidAmount):
		s.writeJSON(w, false, "Amount must be a positive number.")
	case errors.Is(err, types.ErrListingNotFound):
		s.writeJSON(w, false, "Listing not found.")
	case errors.Is(err, types.ErrResponseNotFound):
		s.writeJSON(w, false, "Response not found.")
	case errors.Is(err, types.ErrDonationProcessed):
		s.writeJSON(w, false, "Donation not found or already processed.")
	default:
		s.logger.WithError(err).Error("unhandled error in json endpoint")
		s.writeJSON(w, false, "Something went wrong. Please try again.")
	}
}
