// Package prayer computes daily prayer times from solar geometry for a
// given location, calculation method and Asr convention.
package prayer

import (
	"fmt"
	"math"
	"time"

	"github.com/hkhalifa/deen-companion/internal/entities"
)

// methodParams holds the twilight angles for a calculation method. When
// IshaInterval is non-zero, Isha is that many minutes after Maghrib
// instead of an angle-based time.
type methodParams struct {
	FajrAngle    float64
	IshaAngle    float64
	IshaInterval int
}

var methods = map[string]methodParams{
	entities.MethodMWL:     {FajrAngle: 18, IshaAngle: 17},
	entities.MethodISNA:    {FajrAngle: 15, IshaAngle: 15},
	entities.MethodEgypt:   {FajrAngle: 19.5, IshaAngle: 17.5},
	entities.MethodMakkah:  {FajrAngle: 18.5, IshaInterval: 90},
	entities.MethodKarachi: {FajrAngle: 18, IshaAngle: 18},
}

// Params selects the calculation for one location and day.
type Params struct {
	Latitude  float64
	Longitude float64
	Method    string         // one of entities.Method*
	AsrMethod string         // entities.AsrStandard or entities.AsrHanafi
	Adjust    map[string]int // per-prayer minute offsets, keyed by lowercase name
	Location  *time.Location // timezone for the returned times, UTC when nil
}

// Times holds the computed times for one day.
type Times struct {
	Fajr    time.Time `json:"fajr"`
	Sunrise time.Time `json:"sunrise"`
	Dhuhr   time.Time `json:"dhuhr"`
	Asr     time.Time `json:"asr"`
	Maghrib time.Time `json:"maghrib"`
	Isha    time.Time `json:"isha"`
}

// Entry pairs a prayer name with its time.
type Entry struct {
	Name string    `json:"name"`
	At   time.Time `json:"time"`
}

// Ordered returns the day's prayers in chronological order.
func (t Times) Ordered() []Entry {
	return []Entry{
		{"fajr", t.Fajr},
		{"sunrise", t.Sunrise},
		{"dhuhr", t.Dhuhr},
		{"asr", t.Asr},
		{"maghrib", t.Maghrib},
		{"isha", t.Isha},
	}
}

// Next returns the first prayer after now, or the zero Entry when the
// day's prayers have all passed.
func (t Times) Next(now time.Time) (Entry, bool) {
	for _, e := range t.Ordered() {
		if e.Name == "sunrise" {
			continue
		}
		if now.Before(e.At) {
			return e, true
		}
	}
	return Entry{}, false
}

// Compute calculates the prayer times for the given civil date. The
// date's year, month and day are taken in p.Location.
func Compute(date time.Time, p Params) (Times, error) {
	method, ok := methods[p.Method]
	if !ok {
		return Times{}, fmt.Errorf("prayer: unknown calculation method %q", p.Method)
	}
	if p.Latitude < -90 || p.Latitude > 90 || p.Longitude < -180 || p.Longitude > 180 {
		return Times{}, fmt.Errorf("prayer: coordinates out of range")
	}

	asrFactor := 1.0
	switch p.AsrMethod {
	case "", entities.AsrStandard:
	case entities.AsrHanafi:
		asrFactor = 2.0
	default:
		return Times{}, fmt.Errorf("prayer: unknown asr method %q", p.AsrMethod)
	}

	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	year, month, day := date.In(loc).Date()
	midnightUTC := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	// Solar position at local solar noon, good enough for minute precision
	decl, eqt := solarPosition(julianDate(year, int(month), day))

	// All intermediate times are fractional hours UTC
	noon := 12 - p.Longitude/15 - eqt

	sunriseHA, err := hourAngle(0.833, decl, p.Latitude)
	if err != nil {
		return Times{}, err
	}
	fajrHA, err := hourAngle(method.FajrAngle, decl, p.Latitude)
	if err != nil {
		return Times{}, err
	}

	times := map[string]float64{
		"fajr":    noon - fajrHA,
		"sunrise": noon - sunriseHA,
		"dhuhr":   noon,
		"asr":     noon + asrHourAngle(asrFactor, decl, p.Latitude),
		"maghrib": noon + sunriseHA,
	}

	if method.IshaInterval > 0 {
		times["isha"] = times["maghrib"] + float64(method.IshaInterval)/60
	} else {
		ishaHA, err := hourAngle(method.IshaAngle, decl, p.Latitude)
		if err != nil {
			return Times{}, err
		}
		times["isha"] = noon + ishaHA
	}

	for name, offset := range p.Adjust {
		if _, ok := times[name]; ok {
			times[name] += float64(offset) / 60
		}
	}

	at := func(name string) time.Time {
		return midnightUTC.Add(time.Duration(times[name] * float64(time.Hour))).In(loc).Round(time.Minute)
	}

	return Times{
		Fajr:    at("fajr"),
		Sunrise: at("sunrise"),
		Dhuhr:   at("dhuhr"),
		Asr:     at("asr"),
		Maghrib: at("maghrib"),
		Isha:    at("isha"),
	}, nil
}

// julianDate converts a civil date to a Julian day number at 0h UT.
func julianDate(year, month, day int) float64 {
	if month <= 2 {
		year--
		month += 12
	}
	a := math.Floor(float64(year) / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*float64(year+4716)) +
		math.Floor(30.6001*float64(month+1)) +
		float64(day) + b - 1524.5
}

// solarPosition returns the sun's declination in degrees and the
// equation of time in hours for a Julian date.
func solarPosition(jd float64) (decl, eqt float64) {
	d := jd - 2451545.0

	g := fixAngle(357.529 + 0.98560028*d)
	q := fixAngle(280.459 + 0.98564736*d)
	l := fixAngle(q + 1.915*sinDeg(g) + 0.020*sinDeg(2*g))
	e := 23.439 - 0.00000036*d

	decl = asinDeg(sinDeg(e) * sinDeg(l))
	ra := math.Atan2(cosDeg(e)*sinDeg(l), cosDeg(l)) * 180 / math.Pi / 15
	eqt = fixHour(q/15 - fixHour(ra))
	if eqt > 12 {
		eqt -= 24
	}
	return decl, eqt
}

// hourAngle returns the hours between solar noon and the moment the sun
// reaches the given depression angle below the horizon.
func hourAngle(angle, decl, latitude float64) (float64, error) {
	cosH := (-sinDeg(angle) - sinDeg(decl)*sinDeg(latitude)) /
		(cosDeg(decl) * cosDeg(latitude))
	if cosH < -1 || cosH > 1 {
		return 0, fmt.Errorf("prayer: sun never reaches %.1f degrees at latitude %.2f", angle, latitude)
	}
	return math.Acos(cosH) * 180 / math.Pi / 15, nil
}

// asrHourAngle returns the hours after solar noon when a shadow reaches
// factor times the object length plus the noon shadow.
func asrHourAngle(factor, decl, latitude float64) float64 {
	angle := -atanDeg(1 / (factor + tanDeg(math.Abs(latitude-decl))))
	cosH := (-sinDeg(angle) - sinDeg(decl)*sinDeg(latitude)) /
		(cosDeg(decl) * cosDeg(latitude))
	cosH = math.Max(-1, math.Min(1, cosH))
	return math.Acos(cosH) * 180 / math.Pi / 15
}

func sinDeg(d float64) float64  { return math.Sin(d * math.Pi / 180) }
func cosDeg(d float64) float64  { return math.Cos(d * math.Pi / 180) }
func tanDeg(d float64) float64  { return math.Tan(d * math.Pi / 180) }
func asinDeg(x float64) float64 { return math.Asin(x) * 180 / math.Pi }
func atanDeg(x float64) float64 { return math.Atan(x) * 180 / math.Pi }

func fixAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func fixHour(h float64) float64 {
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	return h
}
