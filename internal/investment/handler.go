package investments

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sebuszqo/BourseDashboard/internal/investment/holding"
	"github.com/sebuszqo/BourseDashboard/internal/investment/models"
	portfolios "github.com/sebuszqo/BourseDashboard/internal/investment/portfolio"
	transactions "github.com/sebuszqo/BourseDashboard/internal/investment/transaction"
	"github.com/sebuszqo/BourseDashboard/internal/user"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type InvestmentHandler struct {
	portfolioService   portfolios.Service
	transactionService transactions.Service
	holdingService     holding.Service
	respondJSON        func(w http.ResponseWriter, status int, payload interface{})
	respondError       func(w http.ResponseWriter, status int, message string, errors ...[]string)
	log                zerolog.Logger
}

func NewInvestmentHandler(
	portfolioService portfolios.Service,
	transactionService transactions.Service,
	holdingService holding.Service,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
	log zerolog.Logger,
) *InvestmentHandler {
	return &InvestmentHandler{
		portfolioService:   portfolioService,
		transactionService: transactionService,
		holdingService:     holdingService,
		respondJSON:        respondJSON,
		respondError:       respondError,
		log:                log.With().Str("handler", "investment").Logger(),
	}
}

type createPortfolioRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Currency    string `json:"currency"`
}

type createTransactionRequest struct {
	AssetID         uuid.UUID              `json:"asset_id"`
	TransactionType models.TransactionType `json:"transaction_type"`
	Quantity        float64                `json:"quantity"`
	Price           float64                `json:"price"`
	TransactionDate string                 `json:"transaction_date"`
}

func (h *InvestmentHandler) getUserIDReq(w http.ResponseWriter, r *http.Request) string {
	userID, ok := user.IDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return ""
	}
	return userID
}

// respondPortfolioError maps portfolio service errors to HTTP statuses.
func (h *InvestmentHandler) respondPortfolioError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, portfolios.ErrPortfolioNotFound):
		h.respondError(w, http.StatusNotFound, "Portfolio not found")
	case errors.Is(err, portfolios.ErrUnauthorizedAccess):
		h.respondError(w, http.StatusUnauthorized, "Unauthorized access to portfolio")
	case errors.Is(err, portfolios.ErrPortfolioNameTaken):
		h.respondError(w, http.StatusConflict, "Portfolio name already exists")
	default:
		h.log.Error().Err(err).Msg(fallback)
		h.respondError(w, http.StatusInternalServerError, fallback)
	}
}

// ownedPortfolioID resolves the path portfolio and checks it belongs to the caller.
func (h *InvestmentHandler) ownedPortfolioID(w http.ResponseWriter, r *http.Request, userID string) (uuid.UUID, bool) {
	portfolioID := pathUUID(r, "portfolioID")
	owned, err := h.portfolioService.CheckPortfolioOwnership(r.Context(), portfolioID, userID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to check portfolio ownership")
		h.respondError(w, http.StatusInternalServerError, "Failed to check portfolio ownership")
		return uuid.Nil, false
	}
	if !owned {
		h.respondError(w, http.StatusNotFound, "Portfolio not found")
		return uuid.Nil, false
	}
	return portfolioID, true
}

func (h *InvestmentHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}

	var req createPortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		h.respondError(w, http.StatusBadRequest, "Portfolio name is required")
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(r.Context(), userID, req.Name, req.Description, req.Currency)
	if err != nil {
		if errors.Is(err, portfolios.ErrInvalidCurrency) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondPortfolioError(w, err, "Failed to create portfolio")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Portfolio successfully created.",
		"data":    portfolio,
	})
}

func (h *InvestmentHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}

	portfolio, err := h.portfolioService.GetPortfolio(r.Context(), pathUUID(r, "portfolioID"), userID)
	if err != nil {
		h.respondPortfolioError(w, err, "Failed to retrieve portfolio")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Portfolio retrieved successfully.",
		"data":    portfolio,
	})
}

func (h *InvestmentHandler) GetAllPortfolios(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}

	portfoliosList, err := h.portfolioService.GetAllPortfolios(r.Context(), userID)
	if err != nil {
		h.respondPortfolioError(w, err, "Failed to retrieve portfolios list")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "List of portfolios retrieved successfully.",
		"data":    portfoliosList,
	})
}

func (h *InvestmentHandler) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Name == nil && req.Description == nil {
		h.respondError(w, http.StatusBadRequest, "At least one field (name or description) must be provided for update")
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		h.respondError(w, http.StatusBadRequest, "Portfolio Name cannot be empty")
		return
	}

	err := h.portfolioService.UpdatePortfolio(r.Context(), pathUUID(r, "portfolioID"), userID, req.Name, req.Description)
	if err != nil {
		h.respondPortfolioError(w, err, "Failed to update portfolio")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Portfolio successfully updated.",
	})
}

func (h *InvestmentHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}

	if err := h.portfolioService.DeletePortfolio(r.Context(), pathUUID(r, "portfolioID"), userID); err != nil {
		h.respondPortfolioError(w, err, "Failed to delete portfolio")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Portfolio deleted successfully.",
	})
}

func (h *InvestmentHandler) GetAssetTypes(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   models.AssetTypes,
	})
}

func (h *InvestmentHandler) GetTransactionTypes(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   h.transactionService.GetTransactionTypes(),
	})
}

// parseTransactionDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func parseTransactionDate(s string) (time.Time, error) {
	if len(s) == len("2006-01-02") {
		s += "T00:00:00Z"
	}
	return time.Parse(time.RFC3339, s)
}

func (h *InvestmentHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}
	portfolioID, ok := h.ownedPortfolioID(w, r, userID)
	if !ok {
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	transactionDate, err := parseTransactionDate(req.TransactionDate)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid transaction date format")
		return
	}

	transaction := &models.Transaction{
		PortfolioID: portfolioID,
		AssetID:     req.AssetID,
		Type:        models.TransactionType(strings.ToUpper(string(req.TransactionType))),
		Quantity:    req.Quantity,
		Price:       req.Price,
		Date:        transactionDate,
	}

	if err := h.transactionService.CreateTransaction(r.Context(), transaction); err != nil {
		var validationErrs *transactions.ValidationErrors
		switch {
		case errors.As(err, &validationErrs):
			h.respondError(w, http.StatusBadRequest, "Invalid transaction", validationErrs.Messages())
		case errors.Is(err, transactions.ErrAssetNotFound):
			h.respondError(w, http.StatusBadRequest, "Asset doesn't exist")
		default:
			h.log.Error().Err(err).Msg("Failed to create transaction")
			h.respondError(w, http.StatusInternalServerError, "Failed to create transaction")
		}
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data":   transaction,
	})
}

func (h *InvestmentHandler) GetAllTransactions(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}
	portfolioID, ok := h.ownedPortfolioID(w, r, userID)
	if !ok {
		return
	}

	allTransactions, err := h.transactionService.GetTransactions(r.Context(), portfolioID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to retrieve transactions")
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   allTransactions,
	})
}

func (h *InvestmentHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}
	portfolioID, ok := h.ownedPortfolioID(w, r, userID)
	if !ok {
		return
	}

	err := h.transactionService.DeleteTransaction(r.Context(), portfolioID, pathUUID(r, "transactionID"))
	if err != nil {
		if errors.Is(err, transactions.ErrTransactionNotFound) {
			h.respondError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.log.Error().Err(err).Msg("Failed to delete transaction")
		h.respondError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction deleted successfully.",
	})
}

func (h *InvestmentHandler) GetHoldings(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}

	report, err := h.holdingService.GetPortfolioHoldings(r.Context(), pathUUID(r, "portfolioID"), userID)
	if err != nil {
		h.respondPortfolioError(w, err, "Failed to compute holdings")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   report,
	})
}

func (h *InvestmentHandler) ExportHoldings(w http.ResponseWriter, r *http.Request) {
	userID := h.getUserIDReq(w, r)
	if userID == "" {
		return
	}
	portfolioID := pathUUID(r, "portfolioID")

	content, err := h.holdingService.ExportPortfolioHoldings(r.Context(), portfolioID, userID)
	if err != nil {
		if errors.Is(err, holding.ErrNoExporter) {
			h.respondError(w, http.StatusNotImplemented, "Holdings export is not available")
			return
		}
		h.respondPortfolioError(w, err, "Failed to export holdings")
		return
	}

	filename := fmt.Sprintf("holdings-%s-%s.xlsx", portfolioID, time.Now().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		h.log.Warn().Err(err).Msg("Failed to write holdings export")
	}
}
