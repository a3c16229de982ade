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

const needyRequestTableName = "kindbridge.needy_requests"

var (
	needyRequestColumns       = utils.StructTagValues(types.NeedyRequest{})
	browseNeedyRequestColumns = browseColumns("nr", needyRequestColumns)
)

type NeedyRequestRepository struct {
	pool *pgxpool.Pool
}

func NewNeedyRequestRepository(pool *pgxpool.Pool) *NeedyRequestRepository {
	return &NeedyRequestRepository{pool: pool}
}

func (r *NeedyRequestRepository) Create(ctx context.Context, request *types.NeedyRequest) error {
	request.ID = utils.NanoID()
	request.Status = types.ListingStatusActive
	request.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(needyRequestTableName).
		SetMap(utils.StructToMap(request)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert request query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create needy request")
}

func (r *NeedyRequestRepository) RequestsByUser(ctx context.Context, userID string) ([]*types.NeedyRequest, error) {
	query, args, err := psql().
		Select(needyRequestColumns...).
		From(needyRequestTableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at desc", "id desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate requests-by-user query: %w", err)
	}

	requests := make([]*types.NeedyRequest, 0)
	if err := pgxscan.Select(ctx, r.pool, &requests, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch requests by user: %w", err)
	}

	return requests, nil
}

// ActiveRequests joins the owner profile for display in browse views.
func (r *NeedyRequestRepository) ActiveRequests(ctx context.Context) ([]*types.BrowseNeedyRequest, error) {
	query, args, err := psql().
		Select(browseNeedyRequestColumns...).
		From(needyRequestTableName + " nr").
		Join(userTableName + " u ON nr.user_id = u.id").
		Where(sq.Eq{"nr.status": types.ListingStatusActive}).
		OrderBy("nr.created_at desc", "nr.id desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate active requests query: %w", err)
	}

	requests := make([]*types.BrowseNeedyRequest, 0)
	if err := pgxscan.Select(ctx, r.pool, &requests, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch active requests: %w", err)
	}

	return requests, nil
}

// Close flips an active request to completed. The owner filter makes a
// non-owner call a zero-row no-op.
func (r *NeedyRequestRepository) Close(ctx context.Context, requestID, userID string) error {
	query, args, err := psql().
		Update(needyRequestTableName).
		Set("status", types.ListingStatusCompleted).
		Where(sq.Eq{"id": requestID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate close request query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to close needy request")
}

// OwnerID resolves the posting user of a request.
func (r *NeedyRequestRepository) OwnerID(ctx context.Context, requestID string) (string, error) {
	query, args, err := psql().
		Select("user_id").
		From(needyRequestTableName).
		Where(sq.Eq{"id": requestID}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to generate request owner query: %w", err)
	}

	var ownerID string
	err = pgxscan.Get(ctx, r.pool, &ownerID, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return "", types.ErrListingNotFound
		}
		return "", fmt.Errorf("failed to resolve request owner: %w", err)
	}

	return ownerID, nil
}
