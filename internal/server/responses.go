package server

import (
	"net/http"

	"kindbridge/internal/service"
	"kindbridge/pkg/types"
)

// createResponse is shared by every "respond to a listing" endpoint;
// the role groups only differ in which listing kinds they point at.
func (s *Service) createResponse(w http.ResponseWriter, r *http.Request, ref types.ListingRef) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		s.writeJSON(w, false, "Authentication required.")
		return
	}

	input := service.ResponseInput{
		Message:  r.FormValue("message"),
		Contact:  r.FormValue("responder_contact"),
		Name:     r.FormValue("responder_name"),
		Quantity: r.FormValue("quantity"),
	}

	if _, err := s.responses.Create(r.Context(), session.UserID, ref, input); err != nil {
		s.writeJSONError(w, err)
		return
	}

	s.writeJSON(w, true, "Response sent.")
}

func (s *Service) handleMarkResponseContacted(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		s.writeJSON(w, false, "Authentication required.")
		return
	}

	responseID := r.PathValue("id")
	if err := s.responses.MarkContacted(r.Context(), responseID, session.UserID); err != nil {
		s.writeJSONError(w, err)
		return
	}

	s.writeJSON(w, true, "Marked as contacted.")
}

func (s *Service) handleDeleteResponse(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		s.writeJSON(w, false, "Authentication required.")
		return
	}

	responseID := r.PathValue("id")
	if err := s.responses.Delete(r.Context(), responseID, session.UserID); err != nil {
		s.writeJSONError(w, err)
		return
	}

	s.writeJSON(w, true, "Response deleted.")
}
