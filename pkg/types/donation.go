package types

import "time"

type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusCompleted DonationStatus = "completed"
	DonationStatusRejected  DonationStatus = "rejected"
)

// Donation is an advisory pledge against a fund program, not a money
// movement. It stays pending until the owning fund confirms receipt;
// only then does the amount count toward the program total. Completed
// and rejected are both terminal.
type Donation struct {
	ID           string         `db:"id"`
	DonorID      string         `db:"donor_id"`
	FundID       string         `db:"fund_id"`
	ProgramID    string         `db:"program_id"`
	AmountCents  int64          `db:"amount_cents"`
	Message      *string        `db:"message"`
	DonorContact *string        `db:"donor_contact"`
	DonorName    *string        `db:"donor_name"`
	Status       DonationStatus `db:"status"`
	CreatedAt    time.Time      `db:"created_at"`
}

// PendingDonation is a pending pledge joined with donor profile and
// program title for the fund's review queue. Donor name/contact
// coalesce the snapshot over the live profile.
type PendingDonation struct {
	Donation
	DisplayDonorName    string `db:"display_donor_name"`
	DisplayDonorContact string `db:"display_donor_contact"`
	ProgramTitle        string `db:"program_title"`
}

// DonorDonation is a donor's own pledge with its program title.
type DonorDonation struct {
	Donation
	ProgramTitle string `db:"program_title"`
}
