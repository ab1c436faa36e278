package handlers

import (
	"net/http"
	"testing"
	"time"

	"songsearch/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(method, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestRequestID(t *testing.T) {
	searcher := new(MockSearcher)
	searcher.On("Health", mock.Anything).Return(nil)
	helper := setupRouter(t, searcher, nil)

	t.Run("generated", func(t *testing.T) {
		recorder := helper.GetJSON("/healthz")
		id := recorder.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("propagated", func(t *testing.T) {
		recorder := helper.GetWithHeaders("/healthz", map[string]string{RequestIDHeader: "abc-123"})
		assert.Equal(t, "abc-123", recorder.Header().Get(RequestIDHeader))
	})
}

func TestJWTAuth(t *testing.T) {
	cfg := &config.Config{AuthEnabled: true, JWTSecret: testSecret}
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{
			name:       "valid token",
			header:     "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), future),
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Token " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), future),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong secret",
			header:     "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), future),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired",
			header:     "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), time.Now().Add(-time.Hour)),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unexpected algorithm",
			header:     "Bearer " + signToken(t, jwt.SigningMethodHS512, []byte(testSecret), future),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage",
			header:     "Bearer not-a-jwt",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := new(MockSearcher)
			searcher.On("Search", mock.Anything, mock.Anything).Return([]byte(`[]`), nil).Maybe()

			helper := setupRouter(t, searcher, cfg)
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}
			recorder := helper.GetWithHeaders("/api/song/?search_term=love", headers)

			if tt.wantStatus == http.StatusUnauthorized {
				helper.AssertErrorResponse(recorder, http.StatusUnauthorized, "Invalid token")
				searcher.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
				return
			}
			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

func TestJWTAuth_HealthIsPublic(t *testing.T) {
	searcher := new(MockSearcher)
	searcher.On("Health", mock.Anything).Return(nil)

	helper := setupRouter(t, searcher, &config.Config{AuthEnabled: true, JWTSecret: testSecret})
	recorder := helper.GetJSON("/healthz")

	assert.Equal(t, http.StatusOK, recorder.Code)
}
