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

const donorOfferTableName = "kindbridge.donor_offers"

var (
	donorOfferColumns       = utils.StructTagValues(types.DonorOffer{})
	browseDonorOfferColumns = browseColumns("do", donorOfferColumns)
)

type DonorOfferRepository struct {
	pool *pgxpool.Pool
}

func NewDonorOfferRepository(pool *pgxpool.Pool) *DonorOfferRepository {
	return &DonorOfferRepository{pool: pool}
}

func (r *DonorOfferRepository) Create(ctx context.Context, offer *types.DonorOffer) error {
	offer.ID = utils.NanoID()
	offer.Status = types.ListingStatusActive
	offer.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(donorOfferTableName).
		SetMap(utils.StructToMap(offer)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert offer query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create donor offer")
}

func (r *DonorOfferRepository) OffersByUser(ctx context.Context, userID string) ([]*types.DonorOffer, error) {
	query, args, err := psql().
		Select(donorOfferColumns...).
		From(donorOfferTableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at desc", "id desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate offers-by-user query: %w", err)
	}

	offers := make([]*types.DonorOffer, 0)
	if err := pgxscan.Select(ctx, r.pool, &offers, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch offers by user: %w", err)
	}

	return offers, nil
}

func (r *DonorOfferRepository) ActiveOffers(ctx context.Context) ([]*types.BrowseDonorOffer, error) {
	query, args, err := psql().
		Select(browseDonorOfferColumns...).
		From(donorOfferTableName + " do").
		Join(userTableName + " u ON do.user_id = u.id").
		Where(sq.Eq{"do.status": types.ListingStatusActive}).
		OrderBy("do.created_at desc", "do.id desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate active offers query: %w", err)
	}

	offers := make([]*types.BrowseDonorOffer, 0)
	if err := pgxscan.Select(ctx, r.pool, &offers, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch active offers: %w", err)
	}

	return offers, nil
}

func (r *DonorOfferRepository) Close(ctx context.Context, offerID, userID string) error {
	query, args, err := psql().
		Update(donorOfferTableName).
		Set("status", types.ListingStatusCompleted).
		Where(sq.Eq{"id": offerID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate close offer query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to close donor offer")
}

func (r *DonorOfferRepository) OwnerID(ctx context.Context, offerID string) (string, error) {
	query, args, err := psql().
		Select("user_id").
		From(donorOfferTableName).
		Where(sq.Eq{"id": offerID}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to generate offer owner query: %w", err)
	}

	var ownerID string
	err = pgxscan.Get(ctx, r.pool, &ownerID, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return "", types.ErrListingNotFound
		}
		return "", fmt.Errorf("failed to resolve offer owner: %w", err)
	}

	return ownerID, nil
}
