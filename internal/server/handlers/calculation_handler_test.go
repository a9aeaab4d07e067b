package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aminedz/microimport/internal/domain/models"
	"github.com/aminedz/microimport/internal/server/handlers"
	"github.com/aminedz/microimport/internal/server/middleware"
	"github.com/aminedz/microimport/internal/service/calculation"
	voyagesvc "github.com/aminedz/microimport/internal/service/voyage"
)

// newCalculationRouter wires the calculation routes with a fixed user in the
// request context. The requests below always carry explicit rates and
// margins, so no storage is touched.
func newCalculationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	calcSvc := calculation.NewService(nil)
	voyageSvc := voyagesvc.NewService(nil, nil, calcSvc, nil)
	handler := handlers.NewCalculationHandler(voyageSvc, nil, calcSvc, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetCurrentUser(c, &models.User{
			ID:     primitive.NewObjectID(),
			Name:   "Amine",
			Email:  "amine@example.com",
			Active: true,
		})
	})
	r.POST("/api/calculations/preview", handler.Preview)
	r.POST("/api/calculations/suggest-price", handler.SuggestPrice)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPreviewComputesCalculation(t *testing.T) {
	r := newCalculationRouter()

	w := postJSON(t, r, "/api/calculations/preview", gin.H{
		"currency": "EUR",
		"merchandise": []gin.H{
			{"name": "Espresso machines", "quantity": 1, "unitPurchasePrice": 1000, "unitSalePrice": 20000},
		},
		"rates": gin.H{"EUR": 165, "USD": 150, "TRY": 4.5, "AED": 41, "CNY": 21},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Calculation     models.VoyageCalculation `json:"calculation"`
			CeilingExceeded bool                     `json:"ceilingExceeded"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.True(t, resp.Success)
	calc := resp.Data.Calculation
	require.Equal(t, 165000.0, calc.TotalPurchaseCost)
	require.Equal(t, 8250.0, calc.BaseLevy)
	require.Equal(t, 4950.0, calc.SolidarityContribution)
	require.Equal(t, 2475.0, calc.IncidentalFee)
	require.Equal(t, 15675.0, calc.CustomsFeesTotal)
	require.Equal(t, 180675.0, calc.TotalCost)
	require.Equal(t, 20000.0, calc.TotalRevenue)
	require.Equal(t, -160675.0, calc.NetProfit)
	require.False(t, resp.Data.CeilingExceeded)
}

func TestPreviewRejectsMissingCurrency(t *testing.T) {
	r := newCalculationRouter()

	w := postJSON(t, r, "/api/calculations/preview", gin.H{
		"merchandise": []gin.H{},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggestPriceReturnsTiers(t *testing.T) {
	r := newCalculationRouter()

	w := postJSON(t, r, "/api/calculations/suggest-price", gin.H{
		"unitPurchasePrice": 100,
		"currency":          "EUR",
		"rates":             gin.H{"EUR": 165, "USD": 150, "TRY": 4.5, "AED": 41, "CNY": 21},
		"margins":           gin.H{"min": 25, "recommended": 40, "optimal": 60},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Suggestion models.PriceSuggestion `json:"suggestion"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.True(t, resp.Success)
	require.Equal(t, 18068.0, resp.Data.Suggestion.UnitTotalCost)
	require.Equal(t, 22585.0, resp.Data.Suggestion.Min)
	require.Equal(t, 25295.0, resp.Data.Suggestion.Recommended)
	require.Equal(t, 28908.0, resp.Data.Suggestion.Optimal)
}
