package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.PriceListRepository = (*PriceListRepo)(nil)

// PriceListRepo implementación de PriceListRepository sobre PostgreSQL.
// Las reglas de tarifa se guardan como JSONB.
type PriceListRepo struct {
	q Querier
}

// NewPriceListRepository construye el adaptador de listas de precios. Pasar pool o tx (Querier).
func NewPriceListRepository(q Querier) *PriceListRepo {
	return &PriceListRepo{q: q}
}

// GetActive devuelve la lista vigente del cliente a la fecha: la de
// mayor effective_from que no supere asOf. nil si no hay ninguna.
func (r *PriceListRepo) GetActive(clientID string, asOf time.Time) (*entity.PriceList, error) {
	query := `
		SELECT id, client_id, effective_from, rules, created_at
		FROM price_lists
		WHERE client_id = $1 AND effective_from <= $2
		ORDER BY effective_from DESC
		LIMIT 1`
	var pl entity.PriceList
	var rulesJSON []byte
	err := r.q.QueryRow(context.Background(), query, clientID, asOf).Scan(
		&pl.ID, &pl.ClientID, &pl.EffectiveFrom, &rulesJSON, &pl.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active price list: %w", err)
	}
	if err := json.Unmarshal(rulesJSON, &pl.Rules); err != nil {
		return nil, fmt.Errorf("unmarshal price rules: %w", err)
	}
	return &pl, nil
}

// Create inserta una lista de precios.
func (r *PriceListRepo) Create(pl *entity.PriceList) error {
	rulesJSON, err := json.Marshal(pl.Rules)
	if err != nil {
		return fmt.Errorf("marshal price rules: %w", err)
	}
	query := `
		INSERT INTO price_lists (id, client_id, effective_from, rules, created_at)
		VALUES ($1,$2,$3,$4,$5)`
	_, err = r.q.Exec(context.Background(), query,
		pl.ID, pl.ClientID, pl.EffectiveFrom, rulesJSON, pl.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create price list: %w", err)
	}
	return nil
}
