package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/service"
	appErrors "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/errors"
)

type tokenStub map[string]*models.JWTClaims

func (s tokenStub) ValidateToken(token string) (*models.JWTClaims, error) {
	claims, ok := s[token]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return claims, nil
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes := Routes{
		Bookings:     NewBookingHandler(&bookingCoordinatorMock{}, &rescheduleMock{}, nil),
		Conflicts:    NewConflictHandler(&reporterMock{report: sampleConflictReport()}, nil),
		Availability: NewAvailabilityHandler(&availabilityMock{}, service.DefaultSchedulingConfig()),
		Metrics:      NewMetricsHandler(service.NewMetricsService(), nil),
		Auth: tokenStub{
			"student": {UserID: 1, Role: models.RoleStudent},
			"staff":   {UserID: 2, Role: models.RoleStaff},
			"admin":   {UserID: 3, Role: models.RoleAdmin},
		},
	}
	routes.Register(r.Group("/api/v1"))
	return r
}

func TestRoutesRequireToken(t *testing.T) {
	r := newRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/scheduling/slots?minutes=60", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoutesEnforceRoles(t *testing.T) {
	r := newRouter()
	cases := []struct {
		token string
		path  string
		want  int
	}{
		{"student", "/api/v1/scheduling/slots?minutes=60", http.StatusOK},
		{"student", "/api/v1/conflicts", http.StatusForbidden},
		{"staff", "/api/v1/conflicts", http.StatusOK},
		{"staff", "/api/v1/metrics/summary", http.StatusForbidden},
		{"admin", "/api/v1/metrics/summary", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		req.Header.Set("Authorization", "Bearer "+tc.token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, "%s %s", tc.token, tc.path)
	}
}
