package holding

import (
	"github.com/google/uuid"
	"github.com/sebuszqo/BourseDashboard/internal/investment/models"
)

// PriceLookup resolves the current unit price of an asset. It must be free of side effects;
// ok is false when the asset is unknown.
type PriceLookup interface {
	Price(assetID uuid.UUID) (price float64, ok bool)
}

// MetadataLookup resolves descriptive data of an asset. ok is false when the asset is unknown.
type MetadataLookup interface {
	Metadata(assetID uuid.UUID) (meta models.AssetMetadata, ok bool)
}

type PriceFunc func(assetID uuid.UUID) (float64, bool)

func (f PriceFunc) Price(assetID uuid.UUID) (float64, bool) { return f(assetID) }

type MetadataFunc func(assetID uuid.UUID) (models.AssetMetadata, bool)

func (f MetadataFunc) Metadata(assetID uuid.UUID) (models.AssetMetadata, bool) { return f(assetID) }

// PriceMap is a pre-fetched price table.
type PriceMap map[uuid.UUID]float64

func (m PriceMap) Price(assetID uuid.UUID) (float64, bool) {
	p, ok := m[assetID]
	return p, ok
}

// MetadataMap is a pre-fetched metadata table.
type MetadataMap map[uuid.UUID]models.AssetMetadata

func (m MetadataMap) Metadata(assetID uuid.UUID) (models.AssetMetadata, bool) {
	meta, ok := m[assetID]
	return meta, ok
}
