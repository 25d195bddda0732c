package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/middleware"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
)

// Routes groups the handlers mounted under the API prefix.
type Routes struct {
	Bookings     *BookingHandler
	Conflicts    *ConflictHandler
	Availability *AvailabilityHandler
	Metrics      *MetricsHandler

	Auth        middleware.TokenValidator
	BookingRate *middleware.RateLimiter
}

// Register mounts the scheduling API on group. Every route requires a token.
func (r Routes) Register(group *gin.RouterGroup) {
	group.Use(middleware.JWT(r.Auth))

	bookings := group.Group("/bookings")
	if r.BookingRate != nil {
		bookings.POST("", r.BookingRate.Middleware(), r.Bookings.Create)
	} else {
		bookings.POST("", r.Bookings.Create)
	}
	bookings.POST("/:id/reschedule", r.Bookings.Reschedule)

	group.GET("/resources/:type/:id/availability", r.Availability.Resource)
	group.GET("/scheduling/slots", r.Availability.Slots)

	conflicts := group.Group("/conflicts", middleware.RequireRoles(models.RoleAdmin, models.RoleFaculty, models.RoleStaff))
	conflicts.GET("", r.Conflicts.List)
	conflicts.GET("/export", r.Conflicts.Export)

	group.GET("/metrics/summary", middleware.RequireRoles(models.RoleAdmin), r.Metrics.Summary)
}
