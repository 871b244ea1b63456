// Package hijri converts between Gregorian dates and the tabular
// (civil) Islamic calendar. The tabular calendar is arithmetic, not
// observational, so dates can differ by a day or two from announced
// moon sightings.
package hijri

import (
	"fmt"
	"time"
)

// MonthNames indexed by month number minus one.
var MonthNames = [12]string{
	"Muharram",
	"Safar",
	"Rabi' al-Awwal",
	"Rabi' al-Thani",
	"Jumada al-Awwal",
	"Jumada al-Thani",
	"Rajab",
	"Sha'ban",
	"Ramadan",
	"Shawwal",
	"Dhu al-Qi'dah",
	"Dhu al-Hijjah",
}

// Date is one day in the Hijri calendar.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"` // 1 to 12
	Day   int `json:"day"`   // 1 to 30
}

// MonthName returns the transliterated month name.
func (d Date) MonthName() string {
	if d.Month < 1 || d.Month > 12 {
		return ""
	}
	return MonthNames[d.Month-1]
}

// String formats as "9 Ramadan 1446 AH".
func (d Date) String() string {
	return fmt.Sprintf("%d %s %d AH", d.Day, d.MonthName(), d.Year)
}

// epoch is 1 Muharram 1 AH in the civil tabular convention, 19 July 622
// in the proleptic Gregorian calendar.
var epoch = time.Date(622, time.July, 19, 0, 0, 0, 0, time.UTC)

// IsLeapYear reports whether a Hijri year has 355 days. Eleven of every
// thirty years are leap years.
func IsLeapYear(year int) bool {
	return (11*year+14)%30 < 11
}

// MonthLength returns the number of days in a month. Odd months have
// 30 days, even months 29, and the final month 30 in a leap year.
func MonthLength(year, month int) int {
	if month%2 == 1 || (month == 12 && IsLeapYear(year)) {
		return 30
	}
	return 29
}

// daysBeforeYear counts the days from the epoch to 1 Muharram of the
// given year.
func daysBeforeYear(year int) int {
	return 354*(year-1) + (11*year+3)/30
}

// daysBeforeMonth counts the days from 1 Muharram to the first of the
// given month.
func daysBeforeMonth(month int) int {
	return 29*(month-1) + month/2
}

// civilDays counts days since 1970-01-01 for a proleptic Gregorian
// date. time.Duration cannot span the fourteen centuries back to the
// epoch, so the conversion works on day counts instead.
func civilDays(year int, month time.Month, day int) int {
	y, m := year, int(month)
	if m <= 2 {
		y--
	}
	era := y / 400
	yoe := y - era*400
	mp := m - 3
	if m <= 2 {
		mp = m + 9
	}
	doy := (153*mp+2)/5 + day - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

var epochDays = civilDays(epoch.Year(), epoch.Month(), epoch.Day())

// FromTime converts a Gregorian date to its Hijri equivalent. Only the
// year, month and day in UTC are considered. Dates before the epoch are
// rejected.
func FromTime(t time.Time) (Date, error) {
	utc := t.UTC()
	offset := civilDays(utc.Year(), utc.Month(), utc.Day()) - epochDays + 1
	if offset < 1 {
		return Date{}, fmt.Errorf("hijri: %s predates the calendar epoch", utc.Format("2006-01-02"))
	}

	year := (30*(offset-1) + 10646) / 10631
	dayOfYear := offset - daysBeforeYear(year)

	month := 1
	for dayOfYear > MonthLength(year, month) {
		dayOfYear -= MonthLength(year, month)
		month++
	}

	return Date{Year: year, Month: month, Day: dayOfYear}, nil
}

// ToTime converts a Hijri date to midnight UTC of the corresponding
// Gregorian day.
func ToTime(d Date) (time.Time, error) {
	if d.Year < 1 {
		return time.Time{}, fmt.Errorf("hijri: year %d out of range", d.Year)
	}
	if d.Month < 1 || d.Month > 12 {
		return time.Time{}, fmt.Errorf("hijri: month %d out of range", d.Month)
	}
	if d.Day < 1 || d.Day > MonthLength(d.Year, d.Month) {
		return time.Time{}, fmt.Errorf("hijri: day %d out of range for %s %d", d.Day, d.MonthName(), d.Year)
	}

	offset := daysBeforeYear(d.Year) + daysBeforeMonth(d.Month) + d.Day - 1
	return epoch.AddDate(0, 0, offset), nil
}

// NotableDay returns the annotation for a significant date, or "".
func NotableDay(d Date) string {
	switch {
	case d.Month == 1 && d.Day == 1:
		return "Islamic New Year"
	case d.Month == 1 && d.Day == 10:
		return "Day of Ashura"
	case d.Month == 9 && d.Day == 1:
		return "First day of Ramadan"
	case d.Month == 9 && d.Day == 27:
		return "Laylat al-Qadr (27th night)"
	case d.Month == 10 && d.Day == 1:
		return "Eid al-Fitr"
	case d.Month == 12 && d.Day == 9:
		return "Day of Arafah"
	case d.Month == 12 && d.Day == 10:
		return "Eid al-Adha"
	}
	return ""
}
