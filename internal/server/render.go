package server

import (
	"net/http"

	"kindbridge/pkg/types"
)

func (s *Service) renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) error {
	if setter, ok := data.(types.NavbarDataSetter); ok {
		navbar := types.NavbarData{}
		if session, found := sessionFromContext(r.Context()); found {
			navbar = types.NavbarData{
				IsAuthenticated: true,
				UserID:          session.UserID,
				UserEmail:       session.Email,
				UserName:        session.FullName,
				UserRole:        string(session.Role),
			}
		}
		setter.SetNavbarData(navbar)
	}

	return s.templates.ExecuteTemplate(w, templateName, data)
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
