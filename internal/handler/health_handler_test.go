package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name             string
		pingError        error
		expectedStatus   int
		expectedDatabase string
	}{
		{
			name:             "Store reachable",
			expectedStatus:   http.StatusOK,
			expectedDatabase: "connected",
		},
		{
			name:             "Store unreachable",
			pingError:        errors.New("connection refused"),
			expectedStatus:   http.StatusServiceUnavailable,
			expectedDatabase: "disconnected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pinger := new(MockPinger)
			pinger.On("Ping", mock.Anything).Return(tt.pingError)
			handler := NewHealthHandler(pinger, zerolog.Nop())

			w := httptest.NewRecorder()
			handler.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)

			var got HealthResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
			assert.Equal(t, tt.expectedDatabase, got.Database)
			assert.False(t, got.Timestamp.IsZero())
			pinger.AssertExpectations(t)
		})
	}
}
