package catalog

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/BourseDashboard/internal/investment/models"
)

type Repository interface {
	upsertAssets(ctx context.Context, quotes []models.Quote) ([]models.Asset, error)
	getByID(ctx context.Context, assetID uuid.UUID) (*models.Asset, error)
	getByIDs(ctx context.Context, assetIDs []uuid.UUID) ([]models.Asset, error)
	search(ctx context.Context, query string, assetType models.AssetType, exchange string, limit int) ([]models.Asset, error)
	getLastUpdatedAt(ctx context.Context) (time.Time, error)
}

type assetRepository struct {
	db *sql.DB
}

func NewAssetRepository(db *sql.DB) Repository {
	return &assetRepository{db: db}
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

const assetColumns = `id, ticker, name, asset_type, exchange, currency, price, updated_at`

func scanAsset(row interface{ Scan(dest ...any) error }) (models.Asset, error) {
	var a models.Asset
	err := row.Scan(&a.ID, &a.Ticker, &a.Name, &a.Type, &a.Exchange, &a.Currency, &a.Price, &a.UpdatedAt)
	return a, err
}

func (r *assetRepository) getLastUpdatedAt(ctx context.Context) (time.Time, error) {
	var lastUpdated sql.NullTime
	err := r.db.QueryRowContext(ctx, `SELECT MAX(updated_at) FROM assets`).Scan(&lastUpdated)
	if err != nil {
		return time.Time{}, err
	}
	if !lastUpdated.Valid {
		return time.Time{}, sql.ErrNoRows
	}
	return lastUpdated.Time, nil
}

func (r *assetRepository) upsertAssets(ctx context.Context, quotes []models.Quote) ([]models.Asset, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO assets (ticker, name, asset_type, exchange, currency, price, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW())
        ON CONFLICT (ticker, exchange) DO UPDATE SET
            name = EXCLUDED.name,
            asset_type = EXCLUDED.asset_type,
            currency = EXCLUDED.currency,
            price = EXCLUDED.price,
            updated_at = NOW()
        RETURNING `+assetColumns)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	defer stmt.Close()

	assets := make([]models.Asset, 0, len(quotes))
	for _, q := range quotes {
		asset, err := scanAsset(stmt.QueryRowContext(ctx,
			q.Symbol,
			q.Name,
			string(q.Type),
			q.Exchange,
			q.Currency,
			q.Price,
		))
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		assets = append(assets, asset)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *assetRepository) getByID(ctx context.Context, assetID uuid.UUID) (*models.Asset, error) {
	asset, err := scanAsset(r.db.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = $1`, assetID))
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) getByIDs(ctx context.Context, assetIDs []uuid.UUID) ([]models.Asset, error) {
	if len(assetIDs) == 0 {
		return []models.Asset{}, nil
	}

	ids := make([]string, len(assetIDs))
	for i, id := range assetIDs {
		ids[i] = id.String()
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

func (r *assetRepository) search(ctx context.Context, query string, assetType models.AssetType, exchange string, limit int) ([]models.Asset, error) {
	q := "%" + likeEscaper.Replace(query) + "%"
	rows, err := r.db.QueryContext(ctx, `
        SELECT `+assetColumns+`
        FROM assets
        WHERE (ticker ILIKE $1 ESCAPE '\' OR name ILIKE $1 ESCAPE '\')
          AND ($2 = '' OR asset_type = $2)
          AND ($3 = '' OR exchange = $3)
        ORDER BY ticker
        LIMIT $4
    `, q, string(assetType), strings.ToUpper(exchange), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := []models.Asset{}
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}
