package models

import (
	"time"

	"github.com/google/uuid"
)

type AssetType string

const (
	AssetTypeStock AssetType = "stock"
	AssetTypeBond  AssetType = "bond"
	AssetTypeOPCVM AssetType = "opcvm"
	AssetTypeIndex AssetType = "index"
	AssetTypeOther AssetType = "other"
)

var AssetTypes = []AssetType{AssetTypeStock, AssetTypeBond, AssetTypeOPCVM, AssetTypeIndex, AssetTypeOther}

func (t AssetType) IsValid() bool {
	for _, known := range AssetTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Asset is a catalog entry: a listed security or fund with its last known price.
type Asset struct {
	ID        uuid.UUID `json:"id"`
	Ticker    string    `json:"ticker"`
	Name      string    `json:"name"`
	Type      AssetType `json:"type"`
	Exchange  string    `json:"exchange"`
	Currency  string    `json:"currency"`
	Price     float64   `json:"price"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AssetMetadata is the descriptive part of an asset copied into holdings.
type AssetMetadata struct {
	Ticker string    `json:"ticker"`
	Name   string    `json:"name"`
	Type   AssetType `json:"type"`
}

func (a Asset) Metadata() AssetMetadata {
	return AssetMetadata{Ticker: a.Ticker, Name: a.Name, Type: a.Type}
}

// Quote is a price line received from the market data feed.
type Quote struct {
	Symbol   string    `json:"symbol"`
	Name     string    `json:"name"`
	Type     AssetType `json:"type"`
	Exchange string    `json:"exchange"`
	Currency string    `json:"currency"`
	Price    float64   `json:"price"`
}
