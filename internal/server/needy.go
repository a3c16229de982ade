package server

import (
	"errors"
	"net/http"

	"kindbridge/internal/service"
	"kindbridge/internal/validate"
	"kindbridge/pkg/types"
)

func createListingPageData(title string) *types.CreateListingPageData {
	return &types.CreateListingPageData{
		BasePageData: types.BasePageData{Title: title},
		Categories:   validate.AllowedCategories,
		HelpTypes: []types.HelpType{
			types.HelpTypeOneTime, types.HelpTypeRegular, types.HelpTypeConsultation,
			types.HelpTypeVolunteer, types.HelpTypeOther,
		},
		Urgencies: []types.Urgency{types.UrgencyNormal, types.UrgencyUrgent, types.UrgencyCritical},
		Form:      map[string]string{},
	}
}

func formSnapshot(form service.ListingForm) map[string]string {
	return map[string]string{
		"title":         form.Title,
		"description":   form.Description,
		"category":      form.Category,
		"urgency":       form.Urgency,
		"help_type":     form.HelpType,
		"target_amount": form.TargetAmount,
		"quantity":      form.Quantity,
		"contact_info":  form.ContactInfo,
	}
}

func (s *Service) decodeListingForm(r *http.Request) (service.ListingForm, error) {
	var form service.ListingForm
	if err := r.ParseForm(); err != nil {
		return form, err
	}
	if err := decoder.Decode(&form, r.PostForm); err != nil {
		return form, err
	}
	return form, nil
}

func (s *Service) handleGetCreateRequest(w http.ResponseWriter, r *http.Request) {
	data := createListingPageData("Request Help")
	if err := s.renderTemplate(w, r, "page.needy.create_request", data); err != nil {
		s.logger.WithError(err).Error("failed to render create request page")
		s.internalServerError(w)
	}
}

func (s *Service) handlePostCreateRequest(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	photoKey, photoErr := s.photoFromRequest(r)

	form, err := s.decodeListingForm(r)
	if err != nil {
		s.logger.WithError(err).Error("failed to decode request form")
		s.internalServerError(w)
		return
	}

	data := createListingPageData("Request Help")
	data.Form = formSnapshot(form)

	if photoErr != "" {
		data.Error = "Please fix the highlighted fields."
		data.FieldErrors = map[string]string{"photo": photoErr}
		if renderErr := s.renderTemplate(w, r, "page.needy.create_request", data); renderErr != nil {
			s.logger.WithError(renderErr).Error("failed to render create request page")
			s.internalServerError(w)
		}
		return
	}

	if _, err := s.listings.CreateRequest(r.Context(), session.UserID, form, photoKey); err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			data.Error = "Please fix the highlighted fields."
			data.FieldErrors = validationErr.Fields
			if renderErr := s.renderTemplate(w, r, "page.needy.create_request", data); renderErr != nil {
				s.logger.WithError(renderErr).Error("failed to render create request page")
				s.internalServerError(w)
			}
			return
		}

		s.logger.WithError(err).Error("failed to create needy request")
		s.internalServerError(w)
		return
	}

	s.redirectWithNotice(w, r, "/needy/my-requests", "Help request created.")
}

func (s *Service) handleMyRequests(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	requests, err := s.listings.MyRequests(r.Context(), session.UserID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch my requests")
		s.internalServerError(w)
		return
	}

	data := &types.NeedyRequestsPageData{
		BasePageData: types.BasePageData{
			Title:  "My Requests",
			Notice: r.URL.Query().Get("notice"),
		},
		Requests: requests,
	}

	if err := s.renderTemplate(w, r, "page.needy.my_requests", data); err != nil {
		s.logger.WithError(err).Error("failed to render my requests page")
		s.internalServerError(w)
	}
}

func (s *Service) handleCloseRequest(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	requestID := r.PathValue("id")
	if err := s.listings.CloseRequest(r.Context(), requestID, session.UserID); err != nil {
		s.logger.WithError(err).Error("failed to close request")
		s.internalServerError(w)
		return
	}

	s.redirectWithNotice(w, r, "/needy/my-requests", "Request closed.")
}

func (s *Service) handleAvailableHelp(w http.ResponseWriter, r *http.Request) {
	offers, err := s.listings.ActiveOffers(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch active offers")
		s.internalServerError(w)
		return
	}

	programs, err := s.listings.ActivePrograms(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch active programs")
		s.internalServerError(w)
		return
	}

	data := &types.AvailableHelpPageData{
		BasePageData: types.BasePageData{Title: "Available Help"},
		Offers:       offers,
		Programs:     programs,
	}

	if err := s.renderTemplate(w, r, "page.needy.available_help", data); err != nil {
		s.logger.WithError(err).Error("failed to render available help page")
		s.internalServerError(w)
	}
}

// handleNeedyRespond targets a donor offer or a fund program.
func (s *Service) handleNeedyRespond(w http.ResponseWriter, r *http.Request) {
	kind, err := types.ParseListingKind(r.PathValue("kind"))
	if err != nil || kind == types.ListingKindNeedy {
		s.writeJSON(w, false, "Listing not found.")
		return
	}

	s.createResponse(w, r, types.ListingRef{Kind: kind, ID: r.PathValue("id")})
}

func (s *Service) handleNeedyResponses(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	responses, err := s.responses.Inbox(r.Context(), session.UserID, types.ListingKindNeedy)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch needy responses")
		s.internalServerError(w)
		return
	}

	data := &types.ResponsesPageData{
		BasePageData: types.BasePageData{Title: "Responses"},
		Responses:    responses,
	}

	if err := s.renderTemplate(w, r, "page.responses", data); err != nil {
		s.logger.WithError(err).Error("failed to render responses page")
		s.internalServerError(w)
	}
}
