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

const fundProgramTableName = "kindbridge.fund_programs"

var (
	fundProgramColumns       = utils.StructTagValues(types.FundProgram{})
	browseFundProgramColumns = browseColumns("fp", fundProgramColumns)
)

type FundProgramRepository struct {
	pool *pgxpool.Pool
}

func NewFundProgramRepository(pool *pgxpool.Pool) *FundProgramRepository {
	return &FundProgramRepository{pool: pool}
}

func (r *FundProgramRepository) Create(ctx context.Context, program *types.FundProgram) error {
	program.ID = utils.NanoID()
	program.Status = types.ListingStatusActive
	program.CurrentAmountCents = 0
	program.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(fundProgramTableName).
		SetMap(utils.StructToMap(program)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert program query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create fund program")
}

func (r *FundProgramRepository) Program(ctx context.Context, programID string) (*types.FundProgram, error) {
	query, args, err := psql().
		Select(fundProgramColumns...).
		From(fundProgramTableName).
		Where(sq.Eq{"id": programID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate program query: %w", err)
	}

	var program types.FundProgram
	err = pgxscan.Get(ctx, r.pool, &program, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to fetch program: %w", err)
	}

	return &program, nil
}

func (r *FundProgramRepository) ProgramsByUser(ctx context.Context, userID string) ([]*types.FundProgram, error) {
	query, args, err := psql().
		Select(fundProgramColumns...).
		From(fundProgramTableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at desc", "id desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate programs-by-user query: %w", err)
	}

	programs := make([]*types.FundProgram, 0)
	if err := pgxscan.Select(ctx, r.pool, &programs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch programs by user: %w", err)
	}

	return programs, nil
}

func (r *FundProgramRepository) ActivePrograms(ctx context.Context) ([]*types.BrowseFundProgram, error) {
	query, args, err := psql().
		Select(browseFundProgramColumns...).
		From(fundProgramTableName + " fp").
		Join(userTableName + " u ON fp.user_id = u.id").
		Where(sq.Eq{"fp.status": types.ListingStatusActive}).
		OrderBy("fp.created_at desc", "fp.id desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate active programs query: %w", err)
	}

	programs := make([]*types.BrowseFundProgram, 0)
	if err := pgxscan.Select(ctx, r.pool, &programs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch active programs: %w", err)
	}

	return programs, nil
}

func (r *FundProgramRepository) Close(ctx context.Context, programID, userID string) error {
	query, args, err := psql().
		Update(fundProgramTableName).
		Set("status", types.ListingStatusCompleted).
		Where(sq.Eq{"id": programID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate close program query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to close fund program")
}

func (r *FundProgramRepository) OwnerID(ctx context.Context, programID string) (string, error) {
	query, args, err := psql().
		Select("user_id").
		From(fundProgramTableName).
		Where(sq.Eq{"id": programID}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to generate program owner query: %w", err)
	}

	var ownerID string
	err = pgxscan.Get(ctx, r.pool, &ownerID, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return "", types.ErrListingNotFound
		}
		return "", fmt.Errorf("failed to resolve program owner: %w", err)
	}

	return ownerID, nil
}
