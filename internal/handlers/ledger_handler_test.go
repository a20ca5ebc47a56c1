package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/codewithdeepika/hybrid-seed-inventory/internal/core/domain"
	"github.com/codewithdeepika/hybrid-seed-inventory/internal/handlers"
	"github.com/codewithdeepika/hybrid-seed-inventory/test/helpers"
	"github.com/codewithdeepika/hybrid-seed-inventory/test/mocks"
)

func TestEntryHandler_Create(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		setupMock    func(*mocks.MockEntryService[domain.InwardEntry])
		wantStatus   int
		wantResponse map[string]any
	}{
		{
			name: "creates_entry_and_returns_assigned_id",
			body: `{"seedName":"Tomato","quantity":12.5,"party":"Acme Farms","date":"2024-03-01","notes":"batch A"}`,
			setupMock: func(m *mocks.MockEntryService[domain.InwardEntry]) {
				m.EXPECT().Add(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, e *domain.InwardEntry) error {
						e.ID = 1
						return nil
					})
			},
			wantStatus: http.StatusCreated,
			wantResponse: map[string]any{
				"message": "Inward entry added",
				"id":      float64(1),
			},
		},
		{
			name:       "rejects_malformed_json",
			body:       `{"seedName":`,
			setupMock:  func(m *mocks.MockEntryService[domain.InwardEntry]) {},
			wantStatus: http.StatusBadRequest,
			wantResponse: map[string]any{
				"error": "Invalid request body",
			},
		},
		{
			name: "rejects_entry_failing_validation",
			body: `{"quantity":12.5,"party":"Acme Farms","date":"2024-03-01"}`,
			setupMock: func(m *mocks.MockEntryService[domain.InwardEntry]) {
				m.EXPECT().Add(gomock.Any(), gomock.Any()).Return(
					fmt.Errorf("%w: seedName is required", domain.ErrInvalidEntry))
			},
			wantStatus: http.StatusBadRequest,
			wantResponse: map[string]any{
				"error": "invalid entry: seedName is required",
			},
		},
		{
			name: "datastore_failure_is_opaque_to_the_client",
			body: `{"seedName":"Tomato","quantity":12.5,"party":"Acme Farms","date":"2024-03-01"}`,
			setupMock: func(m *mocks.MockEntryService[domain.InwardEntry]) {
				m.EXPECT().Add(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			wantStatus: http.StatusInternalServerError,
			wantResponse: map[string]any{
				"error": "Failed to add inward entry",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := mocks.NewMockEntryService[domain.InwardEntry](ctrl)
			tt.setupMock(service)

			handler := handlers.NewEntryHandler[domain.InwardEntry](domain.LedgerInward, service, helpers.TestLogger())

			req := httptest.NewRequest(http.MethodPost, "/api/inward", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			handler.Create(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var got map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.wantResponse, got)
		})
	}
}

func TestEntryHandler_List(t *testing.T) {
	t.Run("returns_raw_array", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockEntryService[domain.OutwardEntry](ctrl)
		handler := handlers.NewEntryHandler[domain.OutwardEntry](domain.LedgerOutward, service, helpers.TestLogger())

		entries := []domain.OutwardEntry{*helpers.CreateOutwardEntry(func(e *domain.OutwardEntry) { e.ID = 2 })}
		service.EXPECT().List(gomock.Any()).Return(entries, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/outward", nil)
		rec := httptest.NewRecorder()

		handler.List(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got []domain.OutwardEntry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, int64(2), got[0].ID)
	})

	t.Run("empty_ledger_serializes_as_empty_array", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockEntryService[domain.OutwardEntry](ctrl)
		handler := handlers.NewEntryHandler[domain.OutwardEntry](domain.LedgerOutward, service, helpers.TestLogger())

		service.EXPECT().List(gomock.Any()).Return([]domain.OutwardEntry{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/outward", nil)
		rec := httptest.NewRecorder()

		handler.List(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("datastore_failure_is_opaque_to_the_client", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockEntryService[domain.OutwardEntry](ctrl)
		handler := handlers.NewEntryHandler[domain.OutwardEntry](domain.LedgerOutward, service, helpers.TestLogger())

		service.EXPECT().List(gomock.Any()).Return(nil, errors.New("timeout"))

		req := httptest.NewRequest(http.MethodGet, "/api/outward", nil)
		rec := httptest.NewRecorder()

		handler.List(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Failed to list outward entries"}`, rec.Body.String())
	})
}

func TestEntryHandler_Delete(t *testing.T) {
	tests := []struct {
		name         string
		id           string
		setupMock    func(*mocks.MockEntryService[domain.InwardEntry])
		wantStatus   int
		wantResponse string
	}{
		{
			name: "deletes_existing_entry",
			id:   "1",
			setupMock: func(m *mocks.MockEntryService[domain.InwardEntry]) {
				m.EXPECT().Delete(gomock.Any(), int64(1)).Return(true, nil)
			},
			wantStatus:   http.StatusOK,
			wantResponse: `{"message":"Inward entry deleted"}`,
		},
		{
			name: "miss_yields_not_found",
			id:   "1",
			setupMock: func(m *mocks.MockEntryService[domain.InwardEntry]) {
				m.EXPECT().Delete(gomock.Any(), int64(1)).Return(false, nil)
			},
			wantStatus:   http.StatusNotFound,
			wantResponse: `{"message":"Entry not found"}`,
		},
		{
			name:         "rejects_non_numeric_id",
			id:           "abc",
			setupMock:    func(m *mocks.MockEntryService[domain.InwardEntry]) {},
			wantStatus:   http.StatusBadRequest,
			wantResponse: `{"error":"Invalid entry ID"}`,
		},
		{
			name: "datastore_failure_is_opaque_to_the_client",
			id:   "1",
			setupMock: func(m *mocks.MockEntryService[domain.InwardEntry]) {
				m.EXPECT().Delete(gomock.Any(), int64(1)).Return(false, errors.New("connection refused"))
			},
			wantStatus:   http.StatusInternalServerError,
			wantResponse: `{"error":"Failed to delete inward entry"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := mocks.NewMockEntryService[domain.InwardEntry](ctrl)
			tt.setupMock(service)

			handler := handlers.NewEntryHandler[domain.InwardEntry](domain.LedgerInward, service, helpers.TestLogger())

			req := httptest.NewRequest(http.MethodDelete, "/api/inward/"+tt.id, nil)
			req.SetPathValue("id", tt.id)
			rec := httptest.NewRecorder()

			handler.Delete(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantResponse, rec.Body.String())
		})
	}
}

// Deleting the same id twice yields the identical not-found response both
// times, whether or not the first delete removed a row.
func TestEntryHandler_Delete_RepeatIsConsistent(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockEntryService[domain.InwardEntry](ctrl)
	handler := handlers.NewEntryHandler[domain.InwardEntry](domain.LedgerInward, service, helpers.TestLogger())

	gomock.InOrder(
		service.EXPECT().Delete(gomock.Any(), int64(1)).Return(true, nil),
		service.EXPECT().Delete(gomock.Any(), int64(1)).Return(false, nil),
		service.EXPECT().Delete(gomock.Any(), int64(1)).Return(false, nil),
	)

	wantBodies := []string{
		`{"message":"Inward entry deleted"}`,
		`{"message":"Entry not found"}`,
		`{"message":"Entry not found"}`,
	}
	wantCodes := []int{http.StatusOK, http.StatusNotFound, http.StatusNotFound}

	for i := range wantBodies {
		req := httptest.NewRequest(http.MethodDelete, "/api/inward/1", nil)
		req.SetPathValue("id", "1")
		rec := httptest.NewRecorder()

		handler.Delete(rec, req)

		assert.Equal(t, wantCodes[i], rec.Code)
		assert.JSONEq(t, wantBodies[i], rec.Body.String())
	}
}
