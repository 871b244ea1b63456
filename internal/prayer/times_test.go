package prayer

import (
	"testing"
	"time"

	"github.com/hkhalifa/deen-companion/internal/entities"
)

var meccaParams = Params{
	Latitude:  21.4225,
	Longitude: 39.8262,
	Method:    entities.MethodMWL,
	AsrMethod: entities.AsrStandard,
}

func midsummer() time.Time {
	return time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC)
}

func TestCompute_Ordering(t *testing.T) {
	times, err := Compute(midsummer(), meccaParams)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	ordered := times.Ordered()
	for i := 1; i < len(ordered); i++ {
		if !ordered[i-1].At.Before(ordered[i].At) {
			t.Errorf("%s (%v) should be before %s (%v)",
				ordered[i-1].Name, ordered[i-1].At, ordered[i].Name, ordered[i].At)
		}
	}

	// The whole day fits inside 24 hours
	if span := times.Isha.Sub(times.Fajr); span <= 0 || span >= 24*time.Hour {
		t.Errorf("fajr to isha span = %v", span)
	}
}

func TestCompute_HanafiAsrIsLater(t *testing.T) {
	standard, err := Compute(midsummer(), meccaParams)
	if err != nil {
		t.Fatalf("Compute(standard) error = %v", err)
	}

	hanafi := meccaParams
	hanafi.AsrMethod = entities.AsrHanafi
	later, err := Compute(midsummer(), hanafi)
	if err != nil {
		t.Fatalf("Compute(hanafi) error = %v", err)
	}

	if !later.Asr.After(standard.Asr) {
		t.Errorf("hanafi asr %v should be after standard asr %v", later.Asr, standard.Asr)
	}

	// Only asr differs between the two conventions
	if !later.Fajr.Equal(standard.Fajr) || !later.Maghrib.Equal(standard.Maghrib) {
		t.Error("asr convention should not move other prayers")
	}
}

func TestCompute_Adjustments(t *testing.T) {
	base, err := Compute(midsummer(), meccaParams)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	adjusted := meccaParams
	adjusted.Adjust = map[string]int{"fajr": -5, "isha": 10}
	shifted, err := Compute(midsummer(), adjusted)
	if err != nil {
		t.Fatalf("Compute(adjusted) error = %v", err)
	}

	if got := shifted.Fajr.Sub(base.Fajr); got != -5*time.Minute {
		t.Errorf("fajr shift = %v, expected -5m", got)
	}
	if got := shifted.Isha.Sub(base.Isha); got != 10*time.Minute {
		t.Errorf("isha shift = %v, expected 10m", got)
	}
	if !shifted.Dhuhr.Equal(base.Dhuhr) {
		t.Error("unadjusted prayers should not move")
	}
}

func TestCompute_MakkahIshaInterval(t *testing.T) {
	makkah := meccaParams
	makkah.Method = entities.MethodMakkah
	times, err := Compute(midsummer(), makkah)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if got := times.Isha.Sub(times.Maghrib); got != 90*time.Minute {
		t.Errorf("isha - maghrib = %v, expected 90m", got)
	}
}

func TestCompute_MethodsDifferAtFajr(t *testing.T) {
	mwl, err := Compute(midsummer(), meccaParams)
	if err != nil {
		t.Fatalf("Compute(MWL) error = %v", err)
	}

	isna := meccaParams
	isna.Method = entities.MethodISNA
	shallower, err := Compute(midsummer(), isna)
	if err != nil {
		t.Fatalf("Compute(ISNA) error = %v", err)
	}

	// ISNA's 15 degree twilight angle gives a later fajr than MWL's 18
	if !shallower.Fajr.After(mwl.Fajr) {
		t.Errorf("ISNA fajr %v should be after MWL fajr %v", shallower.Fajr, mwl.Fajr)
	}
}

func TestCompute_UnknownMethod(t *testing.T) {
	bad := meccaParams
	bad.Method = "Mars"
	if _, err := Compute(midsummer(), bad); err == nil {
		t.Error("expected error for unknown method")
	}

	bad = meccaParams
	bad.AsrMethod = "shafi2"
	if _, err := Compute(midsummer(), bad); err == nil {
		t.Error("expected error for unknown asr method")
	}
}

func TestCompute_PolarNightFails(t *testing.T) {
	polar := meccaParams
	polar.Latitude = 78.22 // Longyearbyen
	midwinter := time.Date(2025, time.December, 21, 0, 0, 0, 0, time.UTC)
	if _, err := Compute(midwinter, polar); err == nil {
		t.Error("expected error when the sun never rises")
	}
}

func TestNext(t *testing.T) {
	times, err := Compute(midsummer(), meccaParams)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	entry, ok := times.Next(times.Fajr.Add(-time.Hour))
	if !ok || entry.Name != "fajr" {
		t.Errorf("before dawn the next prayer should be fajr, got %+v", entry)
	}

	entry, ok = times.Next(times.Dhuhr.Add(time.Minute))
	if !ok || entry.Name != "asr" {
		t.Errorf("after dhuhr the next prayer should be asr, got %+v", entry)
	}

	// Sunrise is not a prayer
	entry, ok = times.Next(times.Sunrise.Add(-time.Minute))
	if !ok || entry.Name != "dhuhr" {
		t.Errorf("between fajr and sunrise the next prayer should be dhuhr, got %+v", entry)
	}

	if _, ok := times.Next(times.Isha.Add(time.Minute)); ok {
		t.Error("after isha there is no next prayer today")
	}
}
