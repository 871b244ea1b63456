package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/hkhalifa/deen-companion/internal/database/prayersettings"
	"github.com/hkhalifa/deen-companion/internal/entities"
	"github.com/hkhalifa/deen-companion/internal/geo"
	"github.com/hkhalifa/deen-companion/internal/prayer"
	"github.com/hkhalifa/deen-companion/internal/qibla"
)

// PrayerController serves prayer times and Qibla direction. Both endpoints
// are public; a signed-in user's stored calculation settings are applied
// when no explicit method is requested.
type PrayerController struct {
	settings *prayersettings.Repository
	geo      *geo.Client
}

func NewPrayerController(settings *prayersettings.Repository, geocoder *geo.Client) *PrayerController {
	return &PrayerController{settings: settings, geo: geocoder}
}

// GetPrayerTimes computes the times for one day at a location given either
// as lat/lng query params or as a free-form city name.
func (pc *PrayerController) GetPrayerTimes(c *gin.Context) {
	var (
		lat, lng float64
		place    string
	)

	if city := c.Query("city"); city != "" {
		result, ok := pc.geocodeCity(c, city)
		if !ok {
			return
		}
		lat, lng = result.Latitude, result.Longitude
		place = result.Formatted
	} else {
		var ok bool
		if lat, ok = parseFloatQuery(c, "lat"); !ok {
			return
		}
		if lng, ok = parseFloatQuery(c, "lng"); !ok {
			return
		}
	}

	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondBadRequest(c, "date must be formatted as YYYY-MM-DD")
			return
		}
		date = parsed
	}

	params := prayer.Params{
		Latitude:  lat,
		Longitude: lng,
		Method:    entities.MethodMWL,
		AsrMethod: entities.AsrStandard,
	}
	if userID := GetUserID(c); userID != 0 && pc.settings != nil {
		stored, err := pc.settings.GetOrDefault(userID)
		if err != nil {
			respondInternalError(c, err, "load prayer settings")
			return
		}
		params.Method = stored.CalculationMethod
		params.AsrMethod = stored.AsrMethod
		params.Adjust = minuteAdjustments(stored.Adjustments)
	}
	if method := c.Query("method"); method != "" {
		if !entities.ValidCalculationMethod(method) {
			respondBadRequest(c, "unknown calculation method")
			return
		}
		params.Method = method
	}
	if asr := c.Query("asr"); asr != "" {
		if !entities.ValidAsrMethod(asr) {
			respondBadRequest(c, "asr must be standard or hanafi")
			return
		}
		params.AsrMethod = asr
	}

	times, err := prayer.Compute(date, params)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	response := gin.H{
		"date":      date.Format("2006-01-02"),
		"latitude":  lat,
		"longitude": lng,
		"method":    params.Method,
		"asr":       params.AsrMethod,
		"times":     times,
	}
	if place != "" {
		response["location"] = place
	}
	if next, ok := times.Next(time.Now().UTC()); ok {
		response["next"] = next
	}
	c.JSON(http.StatusOK, response)
}

// GetQibla returns the great-circle bearing from the given coordinates to
// the Kaaba. Accepts lat/lng or a city name.
func (pc *PrayerController) GetQibla(c *gin.Context) {
	var lat, lng float64
	if city := c.Query("city"); city != "" {
		result, ok := pc.geocodeCity(c, city)
		if !ok {
			return
		}
		lat, lng = result.Latitude, result.Longitude
	} else {
		var ok bool
		if lat, ok = parseFloatQuery(c, "lat"); !ok {
			return
		}
		if lng, ok = parseFloatQuery(c, "lng"); !ok {
			return
		}
	}

	direction, err := qibla.From(lat, lng)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, direction)
}

// geocodeCity resolves a free-form place name, writing the error response
// itself when the lookup fails.
func (pc *PrayerController) geocodeCity(c *gin.Context, city string) (*geo.Place, bool) {
	if pc.geo == nil {
		respondError(c, http.StatusServiceUnavailable, "geocoding is not configured")
		return nil, false
	}
	result, err := pc.geo.Geocode(c.Request.Context(), city)
	if err != nil {
		switch {
		case errors.Is(err, geo.ErrNoResults):
			respondNotFound(c, "location")
		case errors.Is(err, geo.ErrMissingAPIKey):
			respondError(c, http.StatusServiceUnavailable, "geocoding is not configured")
		default:
			respondBadGateway(c, err, "geocode city")
		}
		return nil, false
	}
	return result, true
}

// minuteAdjustments narrows the stored JSON map to per-prayer minute
// offsets. Non-numeric values are dropped.
func minuteAdjustments(raw datatypes.JSONMap) map[string]int {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]int, len(raw))
	for name, v := range raw {
		if f, ok := v.(float64); ok {
			out[name] = int(f)
		}
	}
	return out
}

// PrayerSettingsController manages the per-user calculation settings.
type PrayerSettingsController struct {
	settings *prayersettings.Repository
}

func NewPrayerSettingsController(settings *prayersettings.Repository) *PrayerSettingsController {
	return &PrayerSettingsController{settings: settings}
}

func (pc *PrayerSettingsController) Get(c *gin.Context) {
	stored, err := pc.settings.GetOrDefault(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "load prayer settings")
		return
	}
	c.JSON(http.StatusOK, stored)
}

type prayerSettingsRequest struct {
	CalculationMethod    string         `json:"calculation_method"`
	AsrMethod            string         `json:"asr_method"`
	Adjustments          map[string]int `json:"adjustments"`
	NotificationsEnabled *bool          `json:"notifications_enabled"`
}

func (pc *PrayerSettingsController) Put(c *gin.Context) {
	var req prayerSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid settings payload")
		return
	}

	if req.CalculationMethod == "" {
		req.CalculationMethod = entities.MethodMWL
	}
	if !entities.ValidCalculationMethod(req.CalculationMethod) {
		respondBadRequest(c, "unknown calculation method")
		return
	}
	if req.AsrMethod == "" {
		req.AsrMethod = entities.AsrStandard
	}
	if !entities.ValidAsrMethod(req.AsrMethod) {
		respondBadRequest(c, "asr must be standard or hanafi")
		return
	}

	settings := &entities.PrayerSettings{
		UserID:               GetUserID(c),
		CalculationMethod:    req.CalculationMethod,
		AsrMethod:            req.AsrMethod,
		NotificationsEnabled: true,
	}
	if req.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *req.NotificationsEnabled
	}
	if len(req.Adjustments) > 0 {
		adjustments := make(datatypes.JSONMap, len(req.Adjustments))
		for name, minutes := range req.Adjustments {
			adjustments[name] = minutes
		}
		settings.Adjustments = adjustments
	}

	saved, err := pc.settings.Upsert(settings)
	if err != nil {
		respondInternalError(c, err, "save prayer settings")
		return
	}
	c.JSON(http.StatusOK, saved)
}
