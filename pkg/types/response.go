package types

import "time"

type ResponseStatus string

const (
	ResponseStatusNew       ResponseStatus = "new"
	ResponseStatusContacted ResponseStatus = "contacted"
)

// Response is a contact-bearing reply to a listing. ToUserID is the
// listing's owner resolved once at creation time and never re-derived.
// FromUserContact and FromUserName are snapshots taken at creation so
// the responder's details survive later profile edits.
type Response struct {
	ID              string         `db:"id"`
	FromUserID      string         `db:"from_user_id"`
	ToUserID        string         `db:"to_user_id"`
	OfferID         string         `db:"offer_id"`
	OfferType       ListingKind    `db:"offer_type"`
	Message         string         `db:"message"`
	Quantity        *int           `db:"quantity"`
	FromUserContact *string        `db:"from_user_contact"`
	FromUserName    *string        `db:"from_user_name"`
	Status          ResponseStatus `db:"status"`
	CreatedAt       time.Time      `db:"created_at"`
}

func (r *Response) Ref() ListingRef {
	return ListingRef{Kind: r.OfferType, ID: r.OfferID}
}

// InboxResponse is a response joined to its originating listing and the
// responder's profile. ResponderName and ResponderContact coalesce the
// snapshot over the live profile: snapshot wins when present.
type InboxResponse struct {
	Response
	ResponderName    string   `db:"responder_name"`
	ResponderContact string   `db:"responder_contact"`
	ResponderRole    UserRole `db:"responder_role"`
	ListingTitle     *string  `db:"listing_title"`
	HelpType         *string  `db:"help_type"`
}
