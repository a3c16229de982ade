package server

import (
	"errors"
	"net/http"

	"kindbridge/internal/service"
	"kindbridge/pkg/types"
)

func (s *Service) handleGetCreateOffer(w http.ResponseWriter, r *http.Request) {
	data := createListingPageData("Offer Help")
	if err := s.renderTemplate(w, r, "page.donor.create_offer", data); err != nil {
		s.logger.WithError(err).Error("failed to render create offer page")
		s.internalServerError(w)
	}
}

func (s *Service) handlePostCreateOffer(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	photoKey, photoErr := s.photoFromRequest(r)

	form, err := s.decodeListingForm(r)
	if err != nil {
		s.logger.WithError(err).Error("failed to decode offer form")
		s.internalServerError(w)
		return
	}

	data := createListingPageData("Offer Help")
	data.Form = formSnapshot(form)

	if photoErr != "" {
		data.Error = "Please fix the highlighted fields."
		data.FieldErrors = map[string]string{"photo": photoErr}
		if renderErr := s.renderTemplate(w, r, "page.donor.create_offer", data); renderErr != nil {
			s.logger.WithError(renderErr).Error("failed to render create offer page")
			s.internalServerError(w)
		}
		return
	}

	if _, err := s.listings.CreateOffer(r.Context(), session.UserID, form, photoKey); err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			data.Error = "Please fix the highlighted fields."
			data.FieldErrors = validationErr.Fields
			if renderErr := s.renderTemplate(w, r, "page.donor.create_offer", data); renderErr != nil {
				s.logger.WithError(renderErr).Error("failed to render create offer page")
				s.internalServerError(w)
			}
			return
		}

		s.logger.WithError(err).Error("failed to create donor offer")
		s.internalServerError(w)
		return
	}

	s.redirectWithNotice(w, r, "/donor/my-offers", "Help offer created.")
}

func (s *Service) handleMyOffers(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	offers, err := s.listings.MyOffers(r.Context(), session.UserID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch my offers")
		s.internalServerError(w)
		return
	}

	data := &types.DonorOffersPageData{
		BasePageData: types.BasePageData{
			Title:  "My Offers",
			Notice: r.URL.Query().Get("notice"),
		},
		Offers: offers,
	}

	if err := s.renderTemplate(w, r, "page.donor.my_offers", data); err != nil {
		s.logger.WithError(err).Error("failed to render my offers page")
		s.internalServerError(w)
	}
}

func (s *Service) handleCloseOffer(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	offerID := r.PathValue("id")
	if err := s.listings.CloseOffer(r.Context(), offerID, session.UserID); err != nil {
		s.logger.WithError(err).Error("failed to close offer")
		s.internalServerError(w)
		return
	}

	s.redirectWithNotice(w, r, "/donor/my-offers", "Offer closed.")
}

func (s *Service) handleDonorBrowseRequests(w http.ResponseWriter, r *http.Request) {
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

func (s *Service) handleDonorBrowsePrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := s.listings.ActivePrograms(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch active programs")
		s.internalServerError(w)
		return
	}

	data := &types.BrowseProgramsPageData{
		BasePageData: types.BasePageData{Title: "Fund Programs"},
		Programs:     programs,
	}

	if err := s.renderTemplate(w, r, "page.browse.programs", data); err != nil {
		s.logger.WithError(err).Error("failed to render browse programs page")
		s.internalServerError(w)
	}
}

func (s *Service) handleDonorRespond(w http.ResponseWriter, r *http.Request) {
	ref := types.ListingRef{
		Kind: types.ListingKindNeedy,
		ID:   r.PathValue("id"),
	}
	s.createResponse(w, r, ref)
}

func (s *Service) handleDonorResponses(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	responses, err := s.responses.Inbox(r.Context(), session.UserID, types.ListingKindDonor)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch donor responses")
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

// handleDonate records a pending pledge against a program.
func (s *Service) handleDonate(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		s.writeJSON(w, false, "Authentication required.")
		return
	}

	programID := r.PathValue("id")
	input := service.DonationInput{
		Amount:  r.FormValue("amount"),
		Message: r.FormValue("message"),
		Contact: r.FormValue("donor_contact"),
		Name:    r.FormValue("donor_name"),
	}

	if _, err := s.donations.Create(r.Context(), session.UserID, programID, input); err != nil {
		s.writeJSONError(w, err)
		return
	}

	s.writeJSON(w, true, "Donation pledged. The fund will confirm receipt.")
}

func (s *Service) handleMyDonations(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	donations, err := s.donations.DonationsByDonor(r.Context(), session.UserID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch my donations")
		s.internalServerError(w)
		return
	}

	data := &types.MyDonationsPageData{
		BasePageData: types.BasePageData{Title: "My Donations"},
		Donations:    donations,
	}

	if err := s.renderTemplate(w, r, "page.donor.my_donations", data); err != nil {
		s.logger.WithError(err).Error("failed to render my donations page")
		s.internalServerError(w)
	}
}
