package types

import "time"

type ListingStatus string

const (
	ListingStatusActive    ListingStatus = "active"
	ListingStatusCompleted ListingStatus = "completed"
)

type Urgency string

const (
	UrgencyNormal   Urgency = "normal"
	UrgencyUrgent   Urgency = "urgent"
	UrgencyCritical Urgency = "critical"
)

type HelpType string

const (
	HelpTypeOneTime      HelpType = "one_time"
	HelpTypeRegular      HelpType = "regular"
	HelpTypeConsultation HelpType = "consultation"
	HelpTypeVolunteer    HelpType = "volunteer"
	HelpTypeOther        HelpType = "other"
)

// NeedyRequest is a help request posted by a needy user.
type NeedyRequest struct {
	ID          string        `db:"id"`
	UserID      string        `db:"user_id"`
	Title       string        `db:"title"`
	Description string        `db:"description"`
	Category    string        `db:"category"`
	Urgency     Urgency       `db:"urgency"`
	Quantity    *int          `db:"quantity"`
	Status      ListingStatus `db:"status"`
	ContactInfo string        `db:"contact_info"`
	PhotoKey    *string       `db:"photo_key"`
	CreatedAt   time.Time     `db:"created_at"`
}

// DonorOffer is a help offer posted by an individual donor.
type DonorOffer struct {
	ID          string        `db:"id"`
	UserID      string        `db:"user_id"`
	Title       string        `db:"title"`
	Description string        `db:"description"`
	Category    string        `db:"category"`
	HelpType    HelpType      `db:"help_type"`
	Quantity    *int          `db:"quantity"`
	Status      ListingStatus `db:"status"`
	ContactInfo string        `db:"contact_info"`
	PhotoKey    *string       `db:"photo_key"`
	CreatedAt   time.Time     `db:"created_at"`
}

// FundProgram is an aid program run by a charitable fund.
// CurrentAmountCents accumulates confirmed donations only.
type FundProgram struct {
	ID                 string        `db:"id"`
	UserID             string        `db:"user_id"`
	Title              string        `db:"title"`
	Description        string        `db:"description"`
	Category           string        `db:"category"`
	TargetAmountCents  *int64        `db:"target_amount_cents"`
	CurrentAmountCents int64         `db:"current_amount_cents"`
	Status             ListingStatus `db:"status"`
	ContactInfo        string        `db:"contact_info"`
	CreatedAt          time.Time     `db:"created_at"`
}

// ListingOwner carries the poster's profile fields alongside a listing
// for browse views.
type ListingOwner struct {
	FullName string  `db:"full_name"`
	Phone    *string `db:"phone"`
	Email    string  `db:"email"`
}

type BrowseNeedyRequest struct {
	NeedyRequest
	ListingOwner
}

type BrowseDonorOffer struct {
	DonorOffer
	ListingOwner
}

type BrowseFundProgram struct {
	FundProgram
	ListingOwner
}
