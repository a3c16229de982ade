// Package seed loads a small demo dataset: one account per role, a
// listing for each, and a pending pledge waiting for the fund to
// review. Seeding is idempotent on the account emails.
package seed

import (
	"context"
	"errors"
	"fmt"

	"kindbridge/internal/store"
	"kindbridge/internal/utils"
	"kindbridge/pkg/types"

	"golang.org/x/crypto/bcrypt"
)

// DemoPassword is the login password for every seeded account.
const DemoPassword = "kindbridge-demo"

type demoUser struct {
	Email    string
	FullName string
	Role     types.UserRole
	Phone    string
	Bio      string
}

var demoUsers = []demoUser{
	{
		Email:    "maria.petrova+demo@example.com",
		FullName: "Maria Petrova",
		Role:     types.UserRoleNeedy,
		Phone:    "+15550001001",
		Bio:      "Single mother of two looking for winter clothing and groceries.",
	},
	{
		Email:    "daniel.okafor+demo@example.com",
		FullName: "Daniel Okafor",
		Role:     types.UserRoleDonor,
		Phone:    "+15550001002",
		Bio:      "Happy to give away furniture and volunteer on weekends.",
	},
	{
		Email:    "hello+demo@brightpath.example.org",
		FullName: "BrightPath Foundation",
		Role:     types.UserRoleFund,
		Phone:    "+15550001003",
		Bio:      "Community fund running food and education programs since 2012.",
	},
}

type Repos struct {
	Users     *store.UserRepository
	Requests  *store.NeedyRequestRepository
	Offers    *store.DonorOfferRepository
	Programs  *store.FundProgramRepository
	Donations *store.DonationRepository
}

// Run seeds demo accounts and content, returning the created users
// keyed by role. Existing accounts are reused, but listings and the
// pledge are inserted on every run.
func Run(ctx context.Context, repos Repos) (map[types.UserRole]*types.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}

	users := make(map[types.UserRole]*types.User, len(demoUsers))
	for _, demo := range demoUsers {
		user, err := repos.Users.UserByEmail(ctx, demo.Email)
		if err != nil {
			if !errors.Is(err, types.ErrUserNotFound) {
				return nil, fmt.Errorf("failed to look up %s: %w", demo.Email, err)
			}

			user = &types.User{
				Email:        demo.Email,
				PasswordHash: string(hash),
				FullName:     demo.FullName,
				Role:         demo.Role,
				Phone:        utils.StringPtr(demo.Phone),
				Bio:          utils.StringPtr(demo.Bio),
			}
			if err := repos.Users.Create(ctx, user); err != nil {
				return nil, fmt.Errorf("failed to create %s: %w", demo.Email, err)
			}
		}
		users[demo.Role] = user
	}

	request := &types.NeedyRequest{
		UserID:      users[types.UserRoleNeedy].ID,
		Title:       "Winter clothes for two kids",
		Description: "My children have outgrown their coats and boots. Sizes 6 and 9.",
		Category:    "clothes",
		Urgency:     types.UrgencyUrgent,
		Quantity:    utils.IntPtr(2),
		ContactInfo: "Call or text +15550001001 after 5pm",
	}
	if err := repos.Requests.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create demo request: %w", err)
	}

	offer := &types.DonorOffer{
		UserID:      users[types.UserRoleDonor].ID,
		Title:       "Free moving help with a van",
		Description: "I have a cargo van and two free Saturdays a month.",
		Category:    "household",
		HelpType:    types.HelpTypeRegular,
		ContactInfo: "daniel.okafor+demo@example.com",
	}
	if err := repos.Offers.Create(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to create demo offer: %w", err)
	}

	program := &types.FundProgram{
		UserID:            users[types.UserRoleFund].ID,
		Title:             "School Lunch Fund",
		Description:       "Covers hot lunches for 40 children through the school year.",
		Category:          "food",
		TargetAmountCents: utils.Int64Ptr(500000),
		ContactInfo:       "hello+demo@brightpath.example.org",
	}
	if err := repos.Programs.Create(ctx, program); err != nil {
		return nil, fmt.Errorf("failed to create demo program: %w", err)
	}

	donation := &types.Donation{
		DonorID:      users[types.UserRoleDonor].ID,
		FundID:       users[types.UserRoleFund].ID,
		ProgramID:    program.ID,
		AmountCents:  7500,
		Message:      utils.StringPtr("Keep up the great work!"),
		DonorContact: utils.StringPtr("+15550001002"),
		DonorName:    utils.StringPtr("Daniel Okafor"),
	}
	if err := repos.Donations.Create(ctx, donation); err != nil {
		return nil, fmt.Errorf("failed to create demo donation: %w", err)
	}

	return users, nil
}
