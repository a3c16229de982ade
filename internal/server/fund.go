package server

import (
	"errors"
	"net/http"

	"kindbridge/internal/service"
	"kindbridge/pkg/types"
)

func (s *Service) handleGetCreateProgram(w http.ResponseWriter, r *http.Request) {
	data := createListingPageData("Create Program")
	if err := s.renderTemplate(w, r, "page.fund.create_program", data); err != nil {
		s.logger.WithError(err).Error("failed to render create program page")
		s.internalServerError(w)
	}
}

func (s *Service) handlePostCreateProgram(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	form, err := s.decodeListingForm(r)
	if err != nil {
		s.logger.WithError(err).Error("failed to decode program form")
		s.internalServerError(w)
		return
	}

	if _, err := s.listings.CreateProgram(r.Context(), session.UserID, form); err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			data := createListingPageData("Create Program")
			data.Form = formSnapshot(form)
			data.Error = "Please fix the highlighted fields."
			data.FieldErrors = validationErr.Fields
			if renderErr := s.renderTemplate(w, r, "page.fund.create_program", data); renderErr != nil {
				s.logger.WithError(renderErr).Error("failed to render create program page")
				s.internalServerError(w)
			}
			return
		}

		s.logger.WithError(err).Error("failed to create fund program")
		s.internalServerError(w)
		return
	}

	s.redirectWithNotice(w, r, "/fund/my-programs", "Aid program created.")
}

func (s *Service) handleMyPrograms(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	programs, err := s.listings.MyPrograms(r.Context(), session.UserID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch my programs")
		s.internalServerError(w)
		return
	}

	data := &types.FundProgramsPageData{
		BasePageData: types.BasePageData{
			Title:  "My Programs",
			Notice: r.URL.Query().Get("notice"),
		},
		Programs: programs,
	}

	if err := s.renderTemplate(w, r, "page.fund.my_programs", data); err != nil {
		s.logger.WithError(err).Error("failed to render my programs page")
		s.internalServerError(w)
	}
}

func (s *Service) handleCloseProgram(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	programID := r.PathValue("id")
	if err := s.listings.CloseProgram(r.Context(), programID, session.UserID); err != nil {
		s.logger.WithError(err).Error("failed to close program")
		s.internalServerError(w)
		return
	}

	s.redirectWithNotice(w, r, "/fund/my-programs", "Program closed.")
}

// handlePendingDonations lists pledges awaiting this fund's decision.
func (s *Service) handlePendingDonations(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	donations, err := s.donations.PendingByFund(r.Context(), session.UserID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch pending donations")
		s.internalServerError(w)
		return
	}

	data := &types.PendingDonationsPageData{
		BasePageData: types.BasePageData{Title: "Pending Donations"},
		Donations:    donations,
	}

	if err := s.renderTemplate(w, r, "page.fund.donations", data); err != nil {
		s.logger.WithError(err).Error("failed to render donations page")
		s.internalServerError(w)
	}
}

func (s *Service) handleConfirmDonation(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		s.writeJSON(w, false, "Authentication required.")
		return
	}

	donationID := r.PathValue("id")
	if err := s.donations.Confirm(r.Context(), donationID, session.UserID); err != nil {
		s.writeJSONError(w, err)
		return
	}

	s.writeJSON(w, true, "Donation confirmed.")
}

func (s *Service) handleRejectDonation(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		s.writeJSON(w, false, "Authentication required.")
		return
	}

	donationID := r.PathValue("id")
	if err := s.donations.Reject(r.Context(), donationID, session.UserID); err != nil {
		s.writeJSONError(w, err)
		return
	}

	s.writeJSON(w, true, "Donation rejected.")
}

func (s *Service) handleFundBrowseRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := s.listings.ActiveRequests(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch active requests")
		s.internalServerError(w)
		return
	}

	data := &types.BrowseRequestsPageData{
		BasePageData: types.BasePageData{Title: "People Asking for Help"},
		Requests:     requests,
	}

	if err := s.renderTemplate(w, r, "page.browse.requests", data); err != nil {
		s.logger.WithError(err).Error("failed to render browse requests page")
		s.internalServerError(w)
	}
}

func (s *Service) handleFundRespond(w http.ResponseWriter, r *http.Request) {
	ref := types.ListingRef{
		Kind: types.ListingKindNeedy,
		ID:   r.PathValue("id"),
	}
	s.createResponse(w, r, ref)
}

func (s *Service) handleFundResponses(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	responses, err := s.responses.Inbox(r.Context(), session.UserID, types.ListingKindFund)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch fund responses")
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
