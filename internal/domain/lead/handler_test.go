package lead

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc)
	RegisterPublicRoutes(r.Group("/api/v1"), h)
	RegisterAdminRoutes(r.Group("/api/v1/admin"), h)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

const validBody = `{"name":"Ana","email":"ana@x.com","campaign_options":["crm"],"budget":50000,"main_objective":"awareness"}`

func TestHandler_SubmitQuote(t *testing.T) {
	store := new(mockStore)
	insertReturnsLead(store)
	r := newTestRouter(NewService(store, nil, nil))

	w, env := doJSON(r, http.MethodPost, "/api/v1/quotes", validBody)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)

	var data SubmitQuoteResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "awareness", data.Lead.MainObjective)
	assert.Equal(t, []string{"crm"}, data.Lead.CampaignOptions)
	assert.Equal(t, 50000, data.Lead.Budget)
	assert.True(t, data.NotificationSent)
}

func TestHandler_SubmitQuote_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
		step   string
	}{
		{"bad json", `{"name":`, http.StatusBadRequest, "INVALID_JSON", ""},
		{"missing objective", `{"name":"Ana","email":"a@x","campaign_options":["crm"],"budget":50000}`, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "objetivo"},
		{"no options", `{"name":"Ana","email":"a@x","campaign_options":[],"budget":50000,"main_objective":"awareness"}`, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "inventario"},
		{"override below max", `{"name":"Ana","email":"a@x","campaign_options":["crm"],"budget":500000,"budget_override":400000,"main_objective":"awareness"}`, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "orcamento"},
		{"budget off the slider", `{"name":"Ana","email":"a@x","campaign_options":["crm"],"budget":12345,"main_objective":"awareness"}`, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "orcamento"},
		{"budget above the slider", `{"name":"Ana","email":"a@x","campaign_options":["crm"],"budget":1000000000,"main_objective":"awareness"}`, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "orcamento"},
		{"override unavailable", `{"name":"Ana","email":"a@x","campaign_options":["crm"],"budget":50000,"budget_override":900000,"main_objective":"awareness"}`, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "orcamento"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mockStore)
			r := newTestRouter(NewService(store, nil, nil))

			w, env := doJSON(r, http.MethodPost, "/api/v1/quotes", tt.body)
			assert.Equal(t, tt.status, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
			if tt.step != "" {
				assert.Contains(t, string(env.Error.Details), `"step":"`+tt.step+`"`)
			}
			store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_SubmitQuote_PersistenceError(t *testing.T) {
	store := new(mockStore)
	store.On("Insert", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
	r := newTestRouter(NewService(store, nil, nil))

	w, env := doJSON(r, http.MethodPost, "/api/v1/quotes", validBody)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "PERSISTENCE_ERROR", env.Error.Code)
	assert.NotContains(t, env.Error.Message, "db down")
}

func TestHandler_UpdateStatus(t *testing.T) {
	store := new(mockStore)
	id := uuid.New()
	store.On("UpdateStatus", mock.Anything, id, StatusInProgress).Return(nil)
	r := newTestRouter(NewService(store, nil, nil))

	w, _ := doJSON(r, http.MethodPatch, "/api/v1/admin/quotes/"+id.String()+"/status", `{"status":"Em Andamento"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env := doJSON(r, http.MethodPatch, "/api/v1/admin/quotes/"+id.String()+"/status", `{"status":"Arquivada"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_STATUS", env.Error.Code)

	w, env = doJSON(r, http.MethodPatch, "/api/v1/admin/quotes/nope/status", `{"status":"Finalizada"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", env.Error.Code)
}

func TestHandler_GetQuote_NotFound(t *testing.T) {
	store := new(mockStore)
	id := uuid.New()
	store.On("GetByID", mock.Anything, id).Return(nil, ErrLeadNotFound)
	r := newTestRouter(NewService(store, nil, nil))

	w, env := doJSON(r, http.MethodGet, "/api/v1/admin/quotes/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "LEAD_NOT_FOUND", env.Error.Code)
}

func TestHandler_ListAndStats(t *testing.T) {
	store := new(mockStore)
	store.On("ListAll", mock.Anything).Return([]Lead{{Name: "Bia"}, {Name: "Ana", Status: StatusPending}}, nil)
	store.On("List", mock.Anything, Filter{Limit: 50}).Return([]Lead{{Name: "Ana", Status: StatusPending}}, int64(1), nil)
	store.On("CountByStatus", mock.Anything).Return(map[Status]int64{StatusPending: 2, StatusDone: 1}, nil)
	r := newTestRouter(NewService(store, nil, nil))

	// no paging parameters lists everything
	w, env := doJSON(r, http.MethodGet, "/api/v1/admin/quotes", "")
	require.Equal(t, http.StatusOK, w.Code)
	var all ListResponse
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Equal(t, int64(2), all.Total)
	assert.Zero(t, all.Limit)
	assert.Equal(t, "Bia", all.Leads[0].Name)

	w, env = doJSON(r, http.MethodGet, "/api/v1/admin/quotes?limit=50", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list ListResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, int64(1), list.Total)
	assert.Equal(t, 50, list.Limit)
	assert.Equal(t, "Ana", list.Leads[0].Name)

	w, env = doJSON(r, http.MethodGet, "/api/v1/admin/quotes/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	var stats StatsResponse
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(3), stats.Total)

	w, env = doJSON(r, http.MethodGet, "/api/v1/admin/quotes?status=Arquivada", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_STATUS", env.Error.Code)
}
