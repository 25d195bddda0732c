package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/middleware"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
	appErrors "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	return middleware.Claims(c)
}

func int64Param(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, name+" must be a positive integer")
	}
	return id, nil
}

func parseDate(raw string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must be YYYY-MM-DD")
	}
	return date, nil
}

func parseWeekdays(raw string) ([]models.Weekday, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var days []models.Weekday
	for _, part := range strings.Split(raw, ",") {
		day, err := models.ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}
