package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/services/channeling-service/internal/domain/port"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/valueobject"
)

// RateConfigRepo implements port.RateConfigRepository.
type RateConfigRepo struct {
	pool *pgxpool.Pool
}

// NewRateConfigRepo creates a new PostgreSQL-backed rate config repository.
func NewRateConfigRepo(pool *pgxpool.Pool) *RateConfigRepo {
	return &RateConfigRepo{pool: pool}
}

// FindActive returns port.ErrNotFound when the partner has no enabled table.
func (r *RateConfigRepo) FindActive(ctx context.Context, channelingType valueobject.ChannelingType) (valueobject.RateConfig, error) {
	query := `
		SELECT rates, active
		FROM channeling_rate_configs
		WHERE channeling_type = $1 AND active
	`
	var (
		raw    []byte
		active bool
	)
	err := r.pool.QueryRow(ctx, query, channelingType.String()).Scan(&raw, &active)
	if errors.Is(err, pgx.ErrNoRows) {
		return valueobject.RateConfig{}, port.ErrNotFound
	}
	if err != nil {
		return valueobject.RateConfig{}, fmt.Errorf("query rate config: %w", err)
	}

	var rates map[string]decimal.Decimal
	if err := json.Unmarshal(raw, &rates); err != nil {
		return valueobject.RateConfig{}, fmt.Errorf("decode rate config: %w", err)
	}
	return valueobject.NewRateConfig(rates, active), nil
}

// Save upserts the partner's table.
func (r *RateConfigRepo) Save(ctx context.Context, channelingType valueobject.ChannelingType, cfg valueobject.RateConfig) error {
	raw, err := json.Marshal(cfg.Rates())
	if err != nil {
		return fmt.Errorf("encode rate config: %w", err)
	}

	query := `
		INSERT INTO channeling_rate_configs (channeling_type, rates, active, version, updated_at)
		VALUES ($1, $2, $3, 1, now())
		ON CONFLICT (channeling_type) DO UPDATE SET
			rates      = EXCLUDED.rates,
			active     = EXCLUDED.active,
			version    = channeling_rate_configs.version + 1,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := r.pool.Exec(ctx, query, channelingType.String(), raw, cfg.Active()); err != nil {
		return fmt.Errorf("upsert rate config: %w", err)
	}
	return nil
}
