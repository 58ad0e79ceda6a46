package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"b1-flyer/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFlyerHandler_GetAll(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    string
		filter         model.FlyerFilter
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "No filter",
			filter:         model.FlyerFilter{},
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Status filter and paging",
			queryParams:    "?status=published&limit=10&offset=20",
			filter:         model.FlyerFilter{Status: model.StatusPublished, Limit: 10, Offset: 20},
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Unknown status",
			queryParams:    "?status=bogus",
			filter:         model.FlyerFilter{Status: "bogus"},
			mockError:      model.NewValidationError("status must be one of: draft published archived"),
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Invalid limit",
			queryParams:    "?limit=ten",
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockFlyerService)
			handler := NewFlyerHandler(mockService, zerolog.Nop())

			if tt.expectService {
				var flyers []model.Flyer
				if tt.mockError == nil {
					flyers = []model.Flyer{{ID: "F1", Title: "Weekly"}}
				}
				mockService.On("GetAll", mock.Anything, testUserID, tt.filter).Return(flyers, tt.mockError)
			}

			req := newRequest(http.MethodGet, "/api/flyers"+tt.queryParams, "")
			w := httptest.NewRecorder()

			handler.GetAll(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestFlyerHandler_GetByID(t *testing.T) {
	tests := []struct {
		name           string
		mockReturn     *model.Flyer
		mockError      error
		expectedStatus int
	}{
		{name: "Success", mockReturn: &model.Flyer{ID: "F1", UserID: testUserID}, expectedStatus: http.StatusOK},
		{name: "Not found", mockError: model.ErrFlyerNotFound, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockFlyerService)
			handler := NewFlyerHandler(mockService, zerolog.Nop())

			mockService.On("GetByID", mock.Anything, testUserID, "F1").Return(tt.mockReturn, tt.mockError)

			req := newRequest(http.MethodGet, "/api/flyers/F1", "", "id", "F1")
			w := httptest.NewRecorder()

			handler.GetByID(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestFlyerHandler_Create(t *testing.T) {
	mockService := new(MockFlyerService)
	handler := NewFlyerHandler(mockService, zerolog.Nop())

	created := &model.Flyer{
		ID:       "F1",
		UserID:   testUserID,
		Title:    "Weekly",
		Template: model.TemplateModern,
		Status:   model.StatusDraft,
		Products: []model.ProductSnapshot{{ProductID: "P2", Name: "Bread", DisplayOrder: 0}},
	}

	mockService.On("Create", mock.Anything, testUserID, mock.MatchedBy(func(req *model.CreateFlyerRequest) bool {
		override, ok := req.ProductOverrides["P2"]
		return req.Title == "Weekly" &&
			assert.ObjectsAreEqual([]string{"P2", "P1"}, req.Products) &&
			ok && override.DisplayPrice != nil && *override.DisplayPrice == 0.99
	})).Return(created, nil)

	body := `{"title":"Weekly","products":["P2","P1"],"productOverrides":{"P2":{"displayPrice":0.99}}}`
	req := newRequest(http.MethodPost, "/api/flyers", body)
	w := httptest.NewRecorder()

	handler.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var got model.Flyer
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "F1", got.ID)
	require.Len(t, got.Products, 1)
	assert.Equal(t, "P2", got.Products[0].ProductID)

	mockService.AssertExpectations(t)
}

func TestFlyerHandler_Create_InvalidJSON(t *testing.T) {
	mockService := new(MockFlyerService)
	handler := NewFlyerHandler(mockService, zerolog.Nop())

	req := newRequest(http.MethodPost, "/api/flyers", `not json`)
	w := httptest.NewRecorder()

	handler.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestFlyerHandler_Update_ProductsPresence(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		matches func(req *model.UpdateFlyerRequest) bool
	}{
		{
			name: "Absent products",
			body: `{"title":"Renamed"}`,
			matches: func(req *model.UpdateFlyerRequest) bool {
				return req.Products == nil && req.Title != nil && *req.Title == "Renamed"
			},
		},
		{
			name: "Null products",
			body: `{"products":null}`,
			matches: func(req *model.UpdateFlyerRequest) bool {
				return req.Products == nil
			},
		},
		{
			name: "Empty products",
			body: `{"products":[]}`,
			matches: func(req *model.UpdateFlyerRequest) bool {
				return req.Products != nil && len(*req.Products) == 0
			},
		},
		{
			name: "Listed products",
			body: `{"products":["P3","P1"]}`,
			matches: func(req *model.UpdateFlyerRequest) bool {
				return req.Products != nil && assert.ObjectsAreEqual([]string{"P3", "P1"}, *req.Products)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockFlyerService)
			handler := NewFlyerHandler(mockService, zerolog.Nop())

			mockService.On("Update", mock.Anything, testUserID, "F1", mock.MatchedBy(tt.matches)).
				Return(&model.Flyer{ID: "F1"}, nil)

			req := newRequest(http.MethodPut, "/api/flyers/F1", tt.body, "id", "F1")
			w := httptest.NewRecorder()

			handler.Update(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestFlyerHandler_Delete(t *testing.T) {
	mockService := new(MockFlyerService)
	handler := NewFlyerHandler(mockService, zerolog.Nop())

	mockService.On("Delete", mock.Anything, testUserID, "F1").Return(nil)

	req := newRequest(http.MethodDelete, "/api/flyers/F1", "", "id", "F1")
	w := httptest.NewRecorder()

	handler.Delete(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Flyer deleted successfully"}`, w.Body.String())
	mockService.AssertExpectations(t)
}

func TestFlyerHandler_Duplicate(t *testing.T) {
	tests := []struct {
		name           string
		mockReturn     *model.Flyer
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Success",
			mockReturn:     &model.Flyer{ID: "F2", Title: "Weekly - Copy", Status: model.StatusDraft},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Foreign or missing flyer",
			mockError:      model.ErrFlyerNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockFlyerService)
			handler := NewFlyerHandler(mockService, zerolog.Nop())

			mockService.On("Duplicate", mock.Anything, testUserID, "F1").Return(tt.mockReturn, tt.mockError)

			req := newRequest(http.MethodPost, "/api/flyers/F1/duplicate", "", "id", "F1")
			w := httptest.NewRecorder()

			handler.Duplicate(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}
