package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// PriceListUseCase altas y consulta de listas de precios. Las listas no
// se editan: un cambio de tarifa es una lista nueva con effective_from
// posterior, y los eventos ya registrados conservan su precio.
type PriceListUseCase struct {
	priceRepo  repository.PriceListRepository
	clientRepo repository.ClientRepository
}

// NewPriceListUseCase construye el caso de uso.
func NewPriceListUseCase(priceRepo repository.PriceListRepository, clientRepo repository.ClientRepository) *PriceListUseCase {
	return &PriceListUseCase{priceRepo: priceRepo, clientRepo: clientRepo}
}

// Create da de alta una lista de precios para un cliente existente.
func (uc *PriceListUseCase) Create(clientID string, effectiveFrom time.Time, rules entity.PriceRules) (*entity.PriceList, error) {
	if clientID == "" || effectiveFrom.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	pl := &entity.PriceList{
		ID:            uuid.New().String(),
		ClientID:      clientID,
		EffectiveFrom: effectiveFrom,
		Rules:         rules,
		CreatedAt:     time.Now(),
	}
	return pl, uc.priceRepo.Create(pl)
}

// GetActive devuelve la lista vigente del cliente a la fecha; nil si no hay.
func (uc *PriceListUseCase) GetActive(clientID string, asOf time.Time) (*entity.PriceList, error) {
	return uc.priceRepo.GetActive(clientID, asOf)
}
