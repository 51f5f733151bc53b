package investments

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type pathParamKey string

func capitalizeFirstLetter(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(string(s[0])) + s[1:]
}

// ValidateInvestmentPathParamsMiddleware parses the named path values as UUIDs and
// stores them in the request context for pathUUID.
func (h *InvestmentHandler) ValidateInvestmentPathParamsMiddleware(next http.Handler, params ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, param := range params {
			paramValue := r.PathValue(param)
			if paramValue == "" {
				h.respondError(w, http.StatusBadRequest, capitalizeFirstLetter(fmt.Sprintf("%s is required", param)))
				return
			}

			parsedUUID, err := uuid.Parse(paramValue)
			if err != nil {
				h.log.Debug().Str("param", param).Str("value", paramValue).Msg("Invalid path parameter")
				switch param {
				case "portfolioID":
					h.respondError(w, http.StatusNotFound, "Portfolio not found")
				case "transactionID":
					h.respondError(w, http.StatusNotFound, "Transaction not found")
				default:
					h.respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s format", param))
				}
				return
			}
			r = r.WithContext(context.WithValue(r.Context(), pathParamKey(param), parsedUUID))
		}
		next.ServeHTTP(w, r)
	})
}

// pathUUID returns a path parameter validated by ValidateInvestmentPathParamsMiddleware.
func pathUUID(r *http.Request, param string) uuid.UUID {
	id, _ := r.Context().Value(pathParamKey(param)).(uuid.UUID)
	return id
}
