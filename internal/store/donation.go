package store

import (
	"context"
	"fmt"
	"time"

	"kindbridge/internal/utils"
	"kindbridge/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const donationTableName = "kindbridge.donations"

var donationColumns = utils.StructTagValues(types.Donation{})

type DonationRepository struct {
	pool *pgxpool.Pool
}

func NewDonationRepository(pool *pgxpool.Pool) *DonationRepository {
	return &DonationRepository{pool: pool}
}

func (r *DonationRepository) Create(ctx context.Context, donation *types.Donation) error {
	donation.ID = utils.NanoID()
	donation.Status = types.DonationStatusPending
	donation.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(donationTableName).
		SetMap(utils.StructToMap(donation)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert donation query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create donation")
}

// Confirm completes a pending donation and credits its amount to the
// program total in a single transaction. The guard predicate (fund
// owner + status pending) plus the row lock means two concurrent
// confirms of the same donation cannot both accumulate: the second one
// finds no pending row and gets ErrDonationProcessed.
func (r *DonationRepository) Confirm(ctx context.Context, donationID, fundID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin confirm transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query, args, err := psql().
		Select(donationColumns...).
		From(donationTableName).
		Where(sq.Eq{
			"id":      donationID,
			"fund_id": fundID,
			"status":  types.DonationStatusPending,
		}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate pending donation query: %w", err)
	}

	var donation types.Donation
	err = pgxscan.Get(ctx, tx, &donation, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return types.ErrDonationProcessed
		}
		return fmt.Errorf("failed to fetch pending donation: %w", err)
	}

	query, args, err = psql().
		Update(donationTableName).
		Set("status", types.DonationStatusCompleted).
		Where(sq.Eq{"id": donation.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate complete donation query: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to complete donation: %w", err)
	}

	query, args, err = psql().
		Update(fundProgramTableName).
		Set("current_amount_cents", sq.Expr("COALESCE(current_amount_cents, 0) + ?", donation.AmountCents)).
		Where(sq.Eq{"id": donation.ProgramID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate credit program query: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to credit program total: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit confirm transaction: %w", err)
	}

	return nil
}

// Reject marks a pending donation rejected. No ledger effect, so a
// single guarded statement suffices.
func (r *DonationRepository) Reject(ctx context.Context, donationID, fundID string) error {
	query, args, err := psql().
		Update(donationTableName).
		Set("status", types.DonationStatusRejected).
		Where(sq.Eq{
			"id":      donationID,
			"fund_id": fundID,
			"status":  types.DonationStatusPending,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate reject donation query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to reject donation: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrDonationProcessed
	}

	return nil
}

// PendingByFund lists the fund's review queue, newest first.
func (r *DonationRepository) PendingByFund(ctx context.Context, fundID string) ([]*types.PendingDonation, error) {
	cols := make([]string, 0, len(donationColumns)+3)
	for _, c := range donationColumns {
		cols = append(cols, "d."+c)
	}
	cols = append(cols,
		"COALESCE(d.donor_name, u.full_name) AS display_donor_name",
		"COALESCE(d.donor_contact, u.phone, u.email) AS display_donor_contact",
		"fp.title AS program_title",
	)

	query, args, err := psql().
		Select(cols...).
		From(donationTableName + " d").
		Join(userTableName + " u ON d.donor_id = u.id").
		Join(fundProgramTableName + " fp ON d.program_id = fp.id").
		Where(sq.Eq{"d.fund_id": fundID, "d.status": types.DonationStatusPending}).
		OrderBy("d.created_at desc", "d.id desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pending donations query: %w", err)
	}

	donations := make([]*types.PendingDonation, 0)
	if err := pgxscan.Select(ctx, r.pool, &donations, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch pending donations: %w", err)
	}

	return donations, nil
}

// DonationsByDonor lists a donor's own pledges in every status.
func (r *DonationRepository) DonationsByDonor(ctx context.Context, donorID string) ([]*types.DonorDonation, error) {
	cols := make([]string, 0, len(donationColumns)+1)
	for _, c := range donationColumns {
		cols = append(cols, "d."+c)
	}
	cols = append(cols, "fp.title AS program_title")

	query, args, err := psql().
		Select(cols...).
		From(donationTableName + " d").
		Join(fundProgramTableName + " fp ON d.program_id = fp.id").
		Where(sq.Eq{"d.donor_id": donorID}).
		OrderBy("d.created_at desc", "d.id desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donor donations query: %w", err)
	}

	donations := make([]*types.DonorDonation, 0)
	if err := pgxscan.Select(ctx, r.pool, &donations, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch donor donations: %w", err)
	}

	return donations, nil
}
