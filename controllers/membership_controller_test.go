package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/waatech/merch-backend/controllers"
	"github.com/waatech/merch-backend/repository"
	"github.com/waatech/merch-backend/services"
)

type failingChainClient struct{}

func (failingChainClient) BalanceOf(context.Context, string, uint64) (uint64, error) {
	return 0, errors.New("rpc timeout")
}

func setupMembershipRouter(chain services.ChainClient, ledger repository.RedemptionLedger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger, _ := zap.NewDevelopment()
	svc := services.NewMembershipService(chain, ledger, logger)
	mc := controllers.NewMembershipController(svc, logger)

	r := gin.New()
	r.GET("/api/membership", mc.CheckMembership)
	r.GET("/api/redemption", mc.CheckRedemption)
	r.POST("/api/redemption", mc.MarkRedeemed)
	return r
}

func TestCheckMembership_Holder(t *testing.T) {
	r := setupMembershipRouter(&stubChainClient{balances: map[uint64]uint64{2: 3}}, repository.NewMemoryRedemptionLedger())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/membership?address=0xABC123", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["isMember"])
	assert.Equal(t, float64(3), resp["balance"])
}

func TestCheckMembership_ChainFailureReportsNonMember(t *testing.T) {
	r := setupMembershipRouter(failingChainClient{}, repository.NewMemoryRedemptionLedger())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/membership?address=0xABC123", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["isMember"])
	assert.Equal(t, "0xABC123", resp["address"])
}

func TestCheckMembership_MissingAddress(t *testing.T) {
	r := setupMembershipRouter(&stubChainClient{}, repository.NewMemoryRedemptionLedger())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/membership", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRedemptionRoundTrip(t *testing.T) {
	ledger := repository.NewMemoryRedemptionLedger()
	r := setupMembershipRouter(&stubChainClient{}, ledger)

	body, _ := json.Marshal(gin.H{"address": "0xAbCdEf"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/redemption", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "0xabcdef", resp["address"])

	// Reads normalize casing the same way writes do.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/redemption?address=0xABCDEF", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["hasRedeemed"])
}

func TestMarkRedeemed_MissingAddress(t *testing.T) {
	r := setupMembershipRouter(&stubChainClient{}, repository.NewMemoryRedemptionLedger())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/redemption", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
