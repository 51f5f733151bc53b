package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/sebuszqo/BourseDashboard/internal/investment/models"
)

type Handler interface {
	SearchAssets(w http.ResponseWriter, r *http.Request)
	GetAsset(w http.ResponseWriter, r *http.Request)
}

type handler struct {
	catalogService Service
	respondJSON    func(w http.ResponseWriter, status int, payload interface{})
	respondError   func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewCatalogHandler(catalogService Service, respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)) Handler {
	return &handler{
		catalogService: catalogService,
		respondJSON:    respondJSON,
		respondError:   respondError,
	}
}

func (h *handler) SearchAssets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	assetType := models.AssetType(r.URL.Query().Get("type"))
	exchange := r.URL.Query().Get("exchange")

	limit := defaultSearchLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsedLimit, err := strconv.Atoi(limitStr)
		if err != nil || parsedLimit <= 0 {
			h.respondError(w, http.StatusBadRequest, "Query parameter 'limit' must be a positive integer")
			return
		}
		limit = parsedLimit
	}

	if query == "" {
		h.respondError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	assets, err := h.catalogService.SearchAssets(r.Context(), query, assetType, exchange, limit)
	if err != nil {
		if errors.Is(err, ErrInvalidAssetType) {
			h.respondError(w, http.StatusBadRequest, "Invalid asset type")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Error searching assets")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "List of assets retrieved successfully.",
		"data":    assets,
	})
}

func (h *handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	assetID, err := uuid.Parse(r.PathValue("assetID"))
	if err != nil {
		h.respondError(w, http.StatusNotFound, "Asset not found")
		return
	}

	asset, err := h.catalogService.GetAsset(r.Context(), assetID)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			h.respondError(w, http.StatusNotFound, "Asset not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve asset")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   asset,
	})
}
