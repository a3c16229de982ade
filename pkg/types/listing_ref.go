package types

import "fmt"

// ListingKind tags which of the three listing tables a reference points
// into. The three kinds live in disjoint tables, so a cross-table
// reference is always a (kind, id) pair.
type ListingKind string

const (
	ListingKindNeedy ListingKind = "needy"
	ListingKindDonor ListingKind = "donor"
	ListingKindFund  ListingKind = "fund"
)

// ListingRef is a typed reference to one listing of any kind.
type ListingRef struct {
	Kind ListingKind
	ID   string
}

func ParseListingKind(s string) (ListingKind, error) {
	switch ListingKind(s) {
	case ListingKindNeedy:
		return ListingKindNeedy, nil
	case ListingKindDonor:
		return ListingKindDonor, nil
	case ListingKindFund:
		return ListingKindFund, nil
	}
	return "", fmt.Errorf("unknown listing kind %q", s)
}
