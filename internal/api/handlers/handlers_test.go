package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusCreated, map[string]string{"id": "b1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"b1"}`, w.Body.String())
}

func TestRespondJSONNil(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusOK, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRespondErrors(t *testing.T) {
	tests := []struct {
		name    string
		respond func(w http.ResponseWriter)
		status  int
	}{
		{name: "bad request", respond: func(w http.ResponseWriter) { RespondBadRequest(w, "x") }, status: http.StatusBadRequest},
		{name: "unauthorized", respond: func(w http.ResponseWriter) { RespondUnauthorized(w, "x") }, status: http.StatusUnauthorized},
		{name: "forbidden", respond: func(w http.ResponseWriter) { RespondForbidden(w, "x") }, status: http.StatusForbidden},
		{name: "not found", respond: func(w http.ResponseWriter) { RespondNotFound(w, "x") }, status: http.StatusNotFound},
		{name: "conflict", respond: func(w http.ResponseWriter) { RespondConflict(w, "x") }, status: http.StatusConflict},
		{name: "too many requests", respond: func(w http.ResponseWriter) { RespondTooManyRequests(w, "x") }, status: http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.respond(w)
			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, `{"error":"x"}`, w.Body.String())
		})
	}
}

func TestRespondInternalErrorHidesDetails(t *testing.T) {
	w := httptest.NewRecorder()
	RespondInternalError(w)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, msgInternalError, body.Error)
}

func TestRespondErrorWithDetails(t *testing.T) {
	w := httptest.NewRecorder()
	RespondErrorWithDetails(w, http.StatusConflict, "full", map[string]interface{}{
		"capacity": 2,
		"booked":   2,
		"error":    "ignored",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"full","capacity":2,"booked":2}`, w.Body.String())
}

type sample struct {
	LakeID string `json:"lakeId" validate:"required"`
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
}

func TestDecodeJSON(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"lakeId":"wood","date":"2025-06-01"}`))
		var s sample
		require.NoError(t, DecodeJSON(r, &s))
		assert.Equal(t, "wood", s.LakeID)
	})

	t.Run("empty", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		var s sample
		assert.ErrorIs(t, DecodeJSON(r, &s), ErrEmptyBody)
	})

	t.Run("unknown field", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"lakeId":"wood","spots":3}`))
		var s sample
		assert.ErrorIs(t, DecodeJSON(r, &s), ErrInvalidBody)
	})

	t.Run("malformed", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"lakeId":`))
		var s sample
		assert.ErrorIs(t, DecodeJSON(r, &s), ErrInvalidBody)
	})
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(&sample{LakeID: "wood", Date: "2025-06-01"}))

	err := Validate(&sample{Date: "01/06/2025"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidBody)
	assert.Contains(t, err.Error(), "LakeID: required")
	assert.Contains(t, err.Error(), "Date: datetime")
}

func TestLakeAliases(t *testing.T) {
	a := NewLakeAliases(map[string]string{"bignor": "bignor-main", "Wood": "wood-pool"})

	assert.Equal(t, "bignor-main", a.Canonical("bignor"))
	assert.Equal(t, "bignor-main", a.Canonical(" BIGNOR "))
	assert.Equal(t, "wood-pool", a.Canonical("wood"))
	assert.Equal(t, "wood-pool", a.Canonical("wood-pool"))
	assert.Equal(t, "unknown", a.Canonical("unknown"))

	var nilAliases *LakeAliases
	assert.Equal(t, "wood", nilAliases.Canonical("wood"))
}
