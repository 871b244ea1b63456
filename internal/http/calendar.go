package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hkhalifa/deen-companion/internal/hijri"
)

// CalendarController converts Gregorian dates to the tabular Hijri calendar.
type CalendarController struct{}

func NewCalendarController() *CalendarController {
	return &CalendarController{}
}

// GetHijriDate converts ?date=YYYY-MM-DD, defaulting to today.
func (cc *CalendarController) GetHijriDate(c *gin.Context) {
	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondBadRequest(c, "date must be formatted as YYYY-MM-DD")
			return
		}
		date = parsed
	}

	hijriDate, err := hijri.FromTime(date)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	response := gin.H{
		"gregorian": date.Format("2006-01-02"),
		"hijri": gin.H{
			"year":      hijriDate.Year,
			"month":     hijriDate.Month,
			"day":       hijriDate.Day,
			"monthName": hijriDate.MonthName(),
			"formatted": hijriDate.String(),
		},
	}
	if notable := hijri.NotableDay(hijriDate); notable != "" {
		response["notable"] = notable
	}
	c.JSON(http.StatusOK, response)
}
