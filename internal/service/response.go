package service

import (
	"context"
	"strings"

	"kindbridge/internal/utils"
	"kindbridge/internal/validate"
	"kindbridge/pkg/types"
)

type ResponseStore interface {
	Create(ctx context.Context, response *types.Response) error
	Inbox(ctx context.Context, toUserID string, kind types.ListingKind) ([]*types.InboxResponse, error)
	MarkContacted(ctx context.Context, responseID, toUserID string) (bool, error)
	Delete(ctx context.Context, responseID, toUserID string) (bool, error)
}

// ownerResolver is the slice of ListingService the response engine
// needs.
type ownerResolver interface {
	ResolveOwner(ctx context.Context, ref types.ListingRef) (string, error)
}

type ResponseService struct {
	listings  ownerResolver
	responses ResponseStore
}

func NewResponseService(listings ownerResolver, responses ResponseStore) *ResponseService {
	return &ResponseService{listings: listings, responses: responses}
}

type ResponseInput struct {
	Message  string
	Contact  string
	Name     string
	Quantity string
}

// Create records a contact attempt against a listing. The recipient is
// the listing owner at this moment; later ownership changes would not
// touch existing responses. Repeat responses from the same user are
// not deduplicated; follow-up messages are allowed.
func (s *ResponseService) Create(ctx context.Context, fromUserID string, ref types.ListingRef, input ResponseInput) (*types.Response, error) {
	if err := validationError(validate.ResponseForm(
		input.Message, input.Contact, input.Name, input.Quantity,
	)); err != nil {
		return nil, err
	}

	ownerID, err := s.listings.ResolveOwner(ctx, ref)
	if err != nil {
		return nil, err
	}

	response := &types.Response{
		FromUserID:      fromUserID,
		ToUserID:        ownerID,
		OfferID:         ref.ID,
		OfferType:       ref.Kind,
		Message:         strings.TrimSpace(input.Message),
		Quantity:        parseQuantity(input.Quantity),
		FromUserContact: utils.NullableString(strings.TrimSpace(input.Contact)),
		FromUserName:    utils.NullableString(strings.TrimSpace(input.Name)),
	}

	if err := s.responses.Create(ctx, response); err != nil {
		return nil, err
	}

	return response, nil
}

func (s *ResponseService) Inbox(ctx context.Context, toUserID string, kind types.ListingKind) ([]*types.InboxResponse, error) {
	return s.responses.Inbox(ctx, toUserID, kind)
}

// MarkContacted flips new -> contacted. Only the recipient can do
// this; anyone else matches zero rows and gets ErrResponseNotFound
// without the row changing.
func (s *ResponseService) MarkContacted(ctx context.Context, responseID, callerID string) error {
	ok, err := s.responses.MarkContacted(ctx, responseID, callerID)
	if err != nil {
		return err
	}
	if !ok {
		return types.ErrResponseNotFound
	}
	return nil
}

// Delete hard-deletes a response, recipient only.
func (s *ResponseService) Delete(ctx context.Context, responseID, callerID string) error {
	ok, err := s.responses.Delete(ctx, responseID, callerID)
	if err != nil {
		return err
	}
	if !ok {
		return types.ErrResponseNotFound
	}
	return nil
}
