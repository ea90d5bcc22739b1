package repository

import (
	"context"

	"shiftiq/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type BeerRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewBeerRepository(db *pgxpool.Pool, logger *zap.Logger) *BeerRepository {
	return &BeerRepository{
		db:     db,
		logger: logger,
	}
}

var beerColumns = []string{"id", "name", "brewery", "style", "abv", "description", "on_tap", "created_at", "updated_at"}

func (r *BeerRepository) Create(ctx context.Context, beer *models.Beer) error {
	query := squirrel.Insert("beers").
		Columns(beerColumns...).
		Values(beer.ID, beer.Name, beer.Brewery, beer.Style, beer.ABV, beer.Description, beer.OnTap, beer.CreatedAt, beer.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *BeerRepository) List(ctx context.Context) ([]*models.Beer, error) {
	query := squirrel.Select(beerColumns...).
		From("beers").
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var beers []*models.Beer
	for rows.Next() {
		var beer models.Beer
		if err := rows.Scan(
			&beer.ID, &beer.Name, &beer.Brewery, &beer.Style, &beer.ABV, &beer.Description, &beer.OnTap, &beer.CreatedAt, &beer.UpdatedAt,
		); err != nil {
			return nil, err
		}
		beers = append(beers, &beer)
	}

	return beers, rows.Err()
}

func (r *BeerRepository) Update(ctx context.Context, beer *models.Beer) error {
	query := squirrel.Update("beers").
		Set("name", beer.Name).
		Set("brewery", beer.Brewery).
		Set("style", beer.Style).
		Set("abv", beer.ABV).
		Set("description", beer.Description).
		Set("on_tap", beer.OnTap).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": beer.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *BeerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("beers").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
