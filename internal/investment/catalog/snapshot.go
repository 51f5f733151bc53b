package catalog

import (
	"github.com/google/uuid"
	"github.com/sebuszqo/BourseDashboard/internal/investment/models"
)

// Snapshot is a read-only view of the catalog taken before holdings are computed.
// It answers price and metadata lookups without further I/O.
type Snapshot struct {
	metadata map[uuid.UUID]models.AssetMetadata
	prices   map[uuid.UUID]float64
}

func NewSnapshot(assets []models.Asset) *Snapshot {
	s := &Snapshot{
		metadata: make(map[uuid.UUID]models.AssetMetadata, len(assets)),
		prices:   make(map[uuid.UUID]float64, len(assets)),
	}
	for _, a := range assets {
		s.metadata[a.ID] = a.Metadata()
		// a zero price means the asset was never quoted
		if a.Price > 0 {
			s.prices[a.ID] = a.Price
		}
	}
	return s
}

func (s *Snapshot) Price(assetID uuid.UUID) (float64, bool) {
	price, ok := s.prices[assetID]
	return price, ok
}

func (s *Snapshot) Metadata(assetID uuid.UUID) (models.AssetMetadata, bool) {
	meta, ok := s.metadata[assetID]
	return meta, ok
}
