package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"kindbridge/internal/utils"
	"kindbridge/internal/validate"
	"kindbridge/pkg/types"
)

type NeedyRequestStore interface {
	Create(ctx context.Context, request *types.NeedyRequest) error
	RequestsByUser(ctx context.Context, userID string) ([]*types.NeedyRequest, error)
	ActiveRequests(ctx context.Context) ([]*types.BrowseNeedyRequest, error)
	Close(ctx context.Context, requestID, userID string) error
	OwnerID(ctx context.Context, requestID string) (string, error)
}

type DonorOfferStore interface {
	Create(ctx context.Context, offer *types.DonorOffer) error
	OffersByUser(ctx context.Context, userID string) ([]*types.DonorOffer, error)
	ActiveOffers(ctx context.Context) ([]*types.BrowseDonorOffer, error)
	Close(ctx context.Context, offerID, userID string) error
	OwnerID(ctx context.Context, offerID string) (string, error)
}

type FundProgramStore interface {
	Create(ctx context.Context, program *types.FundProgram) error
	Program(ctx context.Context, programID string) (*types.FundProgram, error)
	ProgramsByUser(ctx context.Context, userID string) ([]*types.FundProgram, error)
	ActivePrograms(ctx context.Context) ([]*types.BrowseFundProgram, error)
	Close(ctx context.Context, programID, userID string) error
	OwnerID(ctx context.Context, programID string) (string, error)
}

type ListingService struct {
	requests NeedyRequestStore
	offers   DonorOfferStore
	programs FundProgramStore
}

func NewListingService(requests NeedyRequestStore, offers DonorOfferStore, programs FundProgramStore) *ListingService {
	return &ListingService{requests: requests, offers: offers, programs: programs}
}

type ListingForm struct {
	Title        string `form:"title"`
	Description  string `form:"description"`
	Category     string `form:"category"`
	Urgency      string `form:"urgency"`
	HelpType     string `form:"help_type"`
	TargetAmount string `form:"target_amount"`
	Quantity     string `form:"quantity"`
	ContactInfo  string `form:"contact_info"`
}

func parseQuantity(raw string) *int {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return utils.IntPtr(qty)
}

func (s *ListingService) CreateRequest(ctx context.Context, ownerID string, form ListingForm, photoKey *string) (*types.NeedyRequest, error) {
	if err := validationError(validate.NeedyRequestForm(
		form.Title, form.Description, form.Category, form.Urgency, form.ContactInfo, form.Quantity,
	)); err != nil {
		return nil, err
	}

	request := &types.NeedyRequest{
		UserID:      ownerID,
		Title:       strings.TrimSpace(form.Title),
		Description: strings.TrimSpace(form.Description),
		Category:    form.Category,
		Urgency:     types.Urgency(form.Urgency),
		Quantity:    parseQuantity(form.Quantity),
		ContactInfo: strings.TrimSpace(form.ContactInfo),
		PhotoKey:    photoKey,
	}

	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

func (s *ListingService) CreateOffer(ctx context.Context, ownerID string, form ListingForm, photoKey *string) (*types.DonorOffer, error) {
	if err := validationError(validate.DonorOfferForm(
		form.Title, form.Description, form.Category, form.HelpType, form.ContactInfo, form.Quantity,
	)); err != nil {
		return nil, err
	}

	offer := &types.DonorOffer{
		UserID:      ownerID,
		Title:       strings.TrimSpace(form.Title),
		Description: strings.TrimSpace(form.Description),
		Category:    form.Category,
		HelpType:    types.HelpType(form.HelpType),
		Quantity:    parseQuantity(form.Quantity),
		ContactInfo: strings.TrimSpace(form.ContactInfo),
		PhotoKey:    photoKey,
	}

	if err := s.offers.Create(ctx, offer); err != nil {
		return nil, err
	}

	return offer, nil
}

func (s *ListingService) CreateProgram(ctx context.Context, ownerID string, form ListingForm) (*types.FundProgram, error) {
	fields := validate.FundProgramForm(form.Title, form.Description, form.Category, form.ContactInfo)

	var targetCents *int64
	if strings.TrimSpace(form.TargetAmount) != "" {
		cents, err := validate.AmountCents(form.TargetAmount)
		if err != nil {
			fields["target_amount"] = "Target amount must be a positive number."
		} else {
			targetCents = utils.Int64Ptr(cents)
		}
	}

	if err := validationError(fields); err != nil {
		return nil, err
	}

	program := &types.FundProgram{
		UserID:            ownerID,
		Title:             strings.TrimSpace(form.Title),
		Description:       strings.TrimSpace(form.Description),
		Category:          form.Category,
		TargetAmountCents: targetCents,
		ContactInfo:       strings.TrimSpace(form.ContactInfo),
	}

	if err := s.programs.Create(ctx, program); err != nil {
		return nil, err
	}

	return program, nil
}

// Close* are owner-filtered; closing a listing you do not own (or one
// already closed) is a silent no-op, matching the single "close"
// affordance the owner sees.

func (s *ListingService) CloseRequest(ctx context.Context, requestID, ownerID string) error {
	return s.requests.Close(ctx, requestID, ownerID)
}

func (s *ListingService) CloseOffer(ctx context.Context, offerID, ownerID string) error {
	return s.offers.Close(ctx, offerID, ownerID)
}

func (s *ListingService) CloseProgram(ctx context.Context, programID, ownerID string) error {
	return s.programs.Close(ctx, programID, ownerID)
}

func (s *ListingService) MyRequests(ctx context.Context, ownerID string) ([]*types.NeedyRequest, error) {
	return s.requests.RequestsByUser(ctx, ownerID)
}

func (s *ListingService) MyOffers(ctx context.Context, ownerID string) ([]*types.DonorOffer, error) {
	return s.offers.OffersByUser(ctx, ownerID)
}

func (s *ListingService) MyPrograms(ctx context.Context, ownerID string) ([]*types.FundProgram, error) {
	return s.programs.ProgramsByUser(ctx, ownerID)
}

func (s *ListingService) ActiveRequests(ctx context.Context) ([]*types.BrowseNeedyRequest, error) {
	return s.requests.ActiveRequests(ctx)
}

func (s *ListingService) ActiveOffers(ctx context.Context) ([]*types.BrowseDonorOffer, error) {
	return s.offers.ActiveOffers(ctx)
}

func (s *ListingService) ActivePrograms(ctx context.Context) ([]*types.BrowseFundProgram, error) {
	return s.programs.ActivePrograms(ctx)
}

// ResolveOwner finds the posting user of any listing reference. The
// switch is exhaustive over the three listing kinds.
func (s *ListingService) ResolveOwner(ctx context.Context, ref types.ListingRef) (string, error) {
	switch ref.Kind {
	case types.ListingKindNeedy:
		return s.requests.OwnerID(ctx, ref.ID)
	case types.ListingKindDonor:
		return s.offers.OwnerID(ctx, ref.ID)
	case types.ListingKindFund:
		return s.programs.OwnerID(ctx, ref.ID)
	}
	return "", fmt.Errorf("unknown listing kind %q", ref.Kind)
}
