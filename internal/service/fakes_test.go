package service

import (
	"context"
	"fmt"
	"time"

	"kindbridge/pkg/types"
)

// In-memory store fakes mirroring the repositories' row-matching
// behavior, including the zero-row outcomes of owner-filtered updates.

type fakeUserStore struct {
	users  []*types.User
	nextID int
}

func (f *fakeUserStore) Create(_ context.Context, user *types.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return types.ErrEmailTaken
		}
	}
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	user.CreatedAt = time.Now()
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserStore) User(_ context.Context, userID string) (*types.User, error) {
	for _, user := range f.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return nil, types.ErrUserNotFound
}

func (f *fakeUserStore) UserByEmail(_ context.Context, email string) (*types.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, types.ErrUserNotFound
}

type fakeRequestStore struct {
	requests []*types.NeedyRequest
	nextID   int
}

func (f *fakeRequestStore) Create(_ context.Context, request *types.NeedyRequest) error {
	f.nextID++
	request.ID = fmt.Sprintf("req-%d", f.nextID)
	request.Status = types.ListingStatusActive
	request.CreatedAt = time.Now()
	f.requests = append(f.requests, request)
	return nil
}

func (f *fakeRequestStore) RequestsByUser(_ context.Context, userID string) ([]*types.NeedyRequest, error) {
	var out []*types.NeedyRequest
	for _, request := range f.requests {
		if request.UserID == userID {
			out = append(out, request)
		}
	}
	return out, nil
}

func (f *fakeRequestStore) ActiveRequests(_ context.Context) ([]*types.BrowseNeedyRequest, error) {
	var out []*types.BrowseNeedyRequest
	for _, request := range f.requests {
		if request.Status == types.ListingStatusActive {
			out = append(out, &types.BrowseNeedyRequest{NeedyRequest: *request})
		}
	}
	return out, nil
}

func (f *fakeRequestStore) Close(_ context.Context, requestID, userID string) error {
	for _, request := range f.requests {
		if request.ID == requestID && request.UserID == userID {
			request.Status = types.ListingStatusCompleted
		}
	}
	return nil
}

func (f *fakeRequestStore) OwnerID(_ context.Context, requestID string) (string, error) {
	for _, request := range f.requests {
		if request.ID == requestID {
			return request.UserID, nil
		}
	}
	return "", types.ErrListingNotFound
}

type fakeOfferStore struct {
	offers []*types.DonorOffer
	nextID int
}

func (f *fakeOfferStore) Create(_ context.Context, offer *types.DonorOffer) error {
	f.nextID++
	offer.ID = fmt.Sprintf("offer-%d", f.nextID)
	offer.Status = types.ListingStatusActive
	offer.CreatedAt = time.Now()
	f.offers = append(f.offers, offer)
	return nil
}

func (f *fakeOfferStore) OffersByUser(_ context.Context, userID string) ([]*types.DonorOffer, error) {
	var out []*types.DonorOffer
	for _, offer := range f.offers {
		if offer.UserID == userID {
			out = append(out, offer)
		}
	}
	return out, nil
}

func (f *fakeOfferStore) ActiveOffers(_ context.Context) ([]*types.BrowseDonorOffer, error) {
	var out []*types.BrowseDonorOffer
	for _, offer := range f.offers {
		if offer.Status == types.ListingStatusActive {
			out = append(out, &types.BrowseDonorOffer{DonorOffer: *offer})
		}
	}
	return out, nil
}

func (f *fakeOfferStore) Close(_ context.Context, offerID, userID string) error {
	for _, offer := range f.offers {
		if offer.ID == offerID && offer.UserID == userID {
			offer.Status = types.ListingStatusCompleted
		}
	}
	return nil
}

func (f *fakeOfferStore) OwnerID(_ context.Context, offerID string) (string, error) {
	for _, offer := range f.offers {
		if offer.ID == offerID {
			return offer.UserID, nil
		}
	}
	return "", types.ErrListingNotFound
}

type fakeProgramStore struct {
	programs []*types.FundProgram
	nextID   int
}

func (f *fakeProgramStore) Create(_ context.Context, program *types.FundProgram) error {
	f.nextID++
	program.ID = fmt.Sprintf("prog-%d", f.nextID)
	program.Status = types.ListingStatusActive
	program.CreatedAt = time.Now()
	f.programs = append(f.programs, program)
	return nil
}

func (f *fakeProgramStore) Program(_ context.Context, programID string) (*types.FundProgram, error) {
	for _, program := range f.programs {
		if program.ID == programID {
			return program, nil
		}
	}
	return nil, types.ErrListingNotFound
}

func (f *fakeProgramStore) ProgramsByUser(_ context.Context, userID string) ([]*types.FundProgram, error) {
	var out []*types.FundProgram
	for _, program := range f.programs {
		if program.UserID == userID {
			out = append(out, program)
		}
	}
	return out, nil
}

func (f *fakeProgramStore) ActivePrograms(_ context.Context) ([]*types.BrowseFundProgram, error) {
	var out []*types.BrowseFundProgram
	for _, program := range f.programs {
		if program.Status == types.ListingStatusActive {
			out = append(out, &types.BrowseFundProgram{FundProgram: *program})
		}
	}
	return out, nil
}

func (f *fakeProgramStore) Close(_ context.Context, programID, userID string) error {
	for _, program := range f.programs {
		if program.ID == programID && program.UserID == userID {
			program.Status = types.ListingStatusCompleted
		}
	}
	return nil
}

func (f *fakeProgramStore) OwnerID(_ context.Context, programID string) (string, error) {
	for _, program := range f.programs {
		if program.ID == programID {
			return program.UserID, nil
		}
	}
	return "", types.ErrListingNotFound
}

type fakeResponseStore struct {
	responses []*types.Response
	nextID    int
}

func (f *fakeResponseStore) Create(_ context.Context, response *types.Response) error {
	f.nextID++
	response.ID = fmt.Sprintf("resp-%d", f.nextID)
	response.Status = types.ResponseStatusNew
	response.CreatedAt = time.Now()
	f.responses = append(f.responses, response)
	return nil
}

func (f *fakeResponseStore) Inbox(_ context.Context, toUserID string, kind types.ListingKind) ([]*types.InboxResponse, error) {
	var out []*types.InboxResponse
	for _, response := range f.responses {
		if response.ToUserID == toUserID && response.OfferType == kind {
			out = append(out, &types.InboxResponse{Response: *response})
		}
	}
	return out, nil
}

func (f *fakeResponseStore) MarkContacted(_ context.Context, responseID, toUserID string) (bool, error) {
	for _, response := range f.responses {
		if response.ID == responseID && response.ToUserID == toUserID {
			response.Status = types.ResponseStatusContacted
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeResponseStore) Delete(_ context.Context, responseID, toUserID string) (bool, error) {
	for i, response := range f.responses {
		if response.ID == responseID && response.ToUserID == toUserID {
			f.responses = append(f.responses[:i], f.responses[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// fakeDonationStore replays the repository's transactional semantics:
// confirm credits the program total exactly once, and any non-pending
// match is ErrDonationProcessed.
type fakeDonationStore struct {
	programs  *fakeProgramStore
	donations []*types.Donation
	nextID    int
}

func (f *fakeDonationStore) Create(_ context.Context, donation *types.Donation) error {
	f.nextID++
	donation.ID = fmt.Sprintf("don-%d", f.nextID)
	donation.Status = types.DonationStatusPending
	donation.CreatedAt = time.Now()
	f.donations = append(f.donations, donation)
	return nil
}

func (f *fakeDonationStore) Confirm(ctx context.Context, donationID, fundID string) error {
	for _, donation := range f.donations {
		if donation.ID == donationID && donation.FundID == fundID && donation.Status == types.DonationStatusPending {
			donation.Status = types.DonationStatusCompleted
			program, err := f.programs.Program(ctx, donation.ProgramID)
			if err != nil {
				return err
			}
			program.CurrentAmountCents += donation.AmountCents
			return nil
		}
	}
	return types.ErrDonationProcessed
}

func (f *fakeDonationStore) Reject(_ context.Context, donationID, fundID string) error {
	for _, donation := range f.donations {
		if donation.ID == donationID && donation.FundID == fundID && donation.Status == types.DonationStatusPending {
			donation.Status = types.DonationStatusRejected
			return nil
		}
	}
	return types.ErrDonationProcessed
}

func (f *fakeDonationStore) PendingByFund(_ context.Context, fundID string) ([]*types.PendingDonation, error) {
	var out []*types.PendingDonation
	for _, donation := range f.donations {
		if donation.FundID == fundID && donation.Status == types.DonationStatusPending {
			out = append(out, &types.PendingDonation{Donation: *donation})
		}
	}
	return out, nil
}

func (f *fakeDonationStore) DonationsByDonor(_ context.Context, donorID string) ([]*types.DonorDonation, error) {
	var out []*types.DonorDonation
	for _, donation := range f.donations {
		if donation.DonorID == donorID {
			out = append(out, &types.DonorDonation{Donation: *donation})
		}
	}
	return out, nil
}
