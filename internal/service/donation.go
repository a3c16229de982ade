package service

import (
	"context"
	"strings"

	"kindbridge/internal/utils"
	"kindbridge/internal/validate"
	"kindbridge/pkg/types"
)

type DonationStore interface {
	Create(ctx context.Context, donation *types.Donation) error
	Confirm(ctx context.Context, donationID, fundID string) error
	Reject(ctx context.Context, donationID, fundID string) error
	PendingByFund(ctx context.Context, fundID string) ([]*types.PendingDonation, error)
	DonationsByDonor(ctx context.Context, donorID string) ([]*types.DonorDonation, error)
}

// programLookup is the slice of the program store the ledger needs.
type programLookup interface {
	Program(ctx context.Context, programID string) (*types.FundProgram, error)
}

type DonationService struct {
	programs  programLookup
	donations DonationStore
}

func NewDonationService(programs programLookup, donations DonationStore) *DonationService {
	return &DonationService{programs: programs, donations: donations}
}

type DonationInput struct {
	Amount  string
	Message string
	Contact string
	Name    string
}

// Create records a pending pledge. The amount is validated before any
// row is written, and a pending pledge never touches the program
// total.
func (s *DonationService) Create(ctx context.Context, donorID, programID string, input DonationInput) (*types.Donation, error) {
	amountCents, err := validate.AmountCents(input.Amount)
	if err != nil {
		return nil, err
	}

	program, err := s.programs.Program(ctx, programID)
	if err != nil {
		return nil, err
	}
	if program.Status != types.ListingStatusActive {
		return nil, types.ErrListingNotFound
	}

	donation := &types.Donation{
		DonorID:      donorID,
		FundID:       program.UserID,
		ProgramID:    program.ID,
		AmountCents:  amountCents,
		Message:      utils.NullableString(strings.TrimSpace(input.Message)),
		DonorContact: utils.NullableString(strings.TrimSpace(input.Contact)),
		DonorName:    utils.NullableString(strings.TrimSpace(input.Name)),
	}

	if err := s.donations.Create(ctx, donation); err != nil {
		return nil, err
	}

	return donation, nil
}

// Confirm settles a pending pledge: status becomes completed and the
// amount is credited to the program total, atomically. A donation that
// is not pending anymore (or belongs to another fund) yields
// ErrDonationProcessed and no state change.
func (s *DonationService) Confirm(ctx context.Context, donationID, fundID string) error {
	return s.donations.Confirm(ctx, donationID, fundID)
}

// Reject closes a pending pledge without crediting anything.
func (s *DonationService) Reject(ctx context.Context, donationID, fundID string) error {
	return s.donations.Reject(ctx, donationID, fundID)
}

func (s *DonationService) PendingByFund(ctx context.Context, fundID string) ([]*types.PendingDonation, error) {
	return s.donations.PendingByFund(ctx, fundID)
}

func (s *DonationService) DonationsByDonor(ctx context.Context, donorID string) ([]*types.DonorDonation, error) {
	return s.donations.DonationsByDonor(ctx, donorID)
}
