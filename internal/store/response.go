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

const responseTableName = "kindbridge.responses"

var responseColumns = utils.StructTagValues(types.Response{})

// listingTableForKind maps a listing kind to its table. The switch is
// exhaustive over types.ListingKind; an unknown kind is a programming
// error upstream.
func listingTableForKind(kind types.ListingKind) (string, error) {
	switch kind {
	case types.ListingKindNeedy:
		return needyRequestTableName, nil
	case types.ListingKindDonor:
		return donorOfferTableName, nil
	case types.ListingKindFund:
		return fundProgramTableName, nil
	}
	return "", fmt.Errorf("unknown listing kind %q", kind)
}

type ResponseRepository struct {
	pool *pgxpool.Pool
}

func NewResponseRepository(pool *pgxpool.Pool) *ResponseRepository {
	return &ResponseRepository{pool: pool}
}

func (r *ResponseRepository) Create(ctx context.Context, response *types.Response) error {
	response.ID = utils.NanoID()
	response.Status = types.ResponseStatusNew
	response.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(responseTableName).
		SetMap(utils.StructToMap(response)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert response query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create response")
}

// Inbox returns the responses sent to a user's listings of one kind,
// joined to the originating listing for context. The snapshot taken at
// response time wins over the live profile.
func (r *ResponseRepository) Inbox(ctx context.Context, toUserID string, kind types.ListingKind) ([]*types.InboxResponse, error) {
	listingTable, err := listingTableForKind(kind)
	if err != nil {
		return nil, err
	}

	cols := make([]string, 0, len(responseColumns)+5)
	for _, c := range responseColumns {
		cols = append(cols, "r."+c)
	}
	cols = append(cols,
		"COALESCE(r.from_user_name, u.full_name) AS responder_name",
		"COALESCE(r.from_user_contact, u.phone, u.email) AS responder_contact",
		"u.role AS responder_role",
		"l.title AS listing_title",
	)
	if kind == types.ListingKindDonor {
		cols = append(cols, "l.help_type AS help_type")
	} else {
		cols = append(cols, "NULL AS help_type")
	}

	query, args, err := psql().
		Select(cols...).
		From(responseTableName + " r").
		Join(userTableName + " u ON r.from_user_id = u.id").
		LeftJoin(listingTable + " l ON r.offer_id = l.id").
		Where(sq.Eq{"r.to_user_id": toUserID, "r.offer_type": kind}).
		OrderBy("r.created_at desc", "r.id desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate inbox query: %w", err)
	}

	responses := make([]*types.InboxResponse, 0)
	if err := pgxscan.Select(ctx, r.pool, &responses, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch inbox responses: %w", err)
	}

	return responses, nil
}

// MarkContacted flips a response to contacted. The to_user filter makes
// a foreign caller's attempt match zero rows; the returned bool reports
// whether anything changed.
func (r *ResponseRepository) MarkContacted(ctx context.Context, responseID, toUserID string) (bool, error) {
	query, args, err := psql().
		Update(responseTableName).
		Set("status", types.ResponseStatusContacted).
		Where(sq.Eq{"id": responseID, "to_user_id": toUserID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate mark contacted query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to mark response contacted: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete hard-deletes a response; there is no audit trail.
func (r *ResponseRepository) Delete(ctx context.Context, responseID, toUserID string) (bool, error) {
	query, args, err := psql().
		Delete(responseTableName).
		Where(sq.Eq{"id": responseID, "to_user_id": toUserID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate delete response query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete response: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
