package textparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateMatch is the result of one date matcher strategy.
type dateMatch struct {
	Start time.Time
	End   time.Time
	Span  string
}

// timeMatch is the result of one time matcher strategy. Times are HH:mm.
type timeMatch struct {
	Start string
	End   string
	Span  string
}

var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var (
	namedMonthPattern = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sept|Sep|Oct|Nov|Dec)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s*(\d{4}))?`)
	numericPattern    = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?\b`)
	isoPattern        = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	dayRangePattern   = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})\b`)
)

// matchDate runs the date matcher strategies in priority order and returns
// the first hit: leading day range, named month, numeric, ISO.
func matchDate(text string) (dateMatch, bool) {
	for _, strategy := range []func(string) (dateMatch, bool){
		matchDayRange,
		matchLeadingDay,
		matchNamedMonth,
		matchISODate,
		matchNumericDate,
	} {
		if m, ok := strategy(text); ok {
			return m, true
		}
	}
	return dateMatch{}, false
}

// matchDayRange handles multi-day listing prefixes like "14-16 Winter
// Carnival ...". The month comes from a named month elsewhere in the text,
// defaulting to the current month.
func matchDayRange(text string) (dateMatch, bool) {
	m := dayRangePattern.FindStringSubmatch(text)
	if m == nil {
		return dateMatch{}, false
	}
	startDay, _ := strconv.Atoi(m[1])
	endDay, _ := strconv.Atoi(m[2])
	if startDay < 1 || startDay > 31 || endDay <= startDay || endDay > 31 {
		return dateMatch{}, false
	}

	month := time.Now().UTC().Month()
	year := time.Now().UTC().Year()
	if nm := namedMonthPattern.FindStringSubmatch(text); nm != nil {
		if mo, ok := monthNames[strings.ToLower(strings.TrimSuffix(nm[1], "."))]; ok {
			month = mo
			year = resolveYear(mo, startDay)
		}
	}

	return dateMatch{
		Start: time.Date(year, month, startDay, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, month, endDay, 0, 0, 0, 0, time.UTC),
		Span:  m[0],
	}, true
}

var leadingDayPattern = regexp.MustCompile(`^(\d{1,2})\s+\D`)

// matchLeadingDay handles single-day listing markers like "14 Live Music
// with ...", the monthly-calendar format where each line opens with its day
// of the month. Month and year resolve the same way matchDayRange does.
func matchLeadingDay(text string) (dateMatch, bool) {
	m := leadingDayPattern.FindStringSubmatch(text)
	if m == nil {
		return dateMatch{}, false
	}
	day, _ := strconv.Atoi(m[1])
	if day < 1 || day > 31 {
		return dateMatch{}, false
	}

	month := time.Now().UTC().Month()
	year := time.Now().UTC().Year()
	if nm := namedMonthPattern.FindStringSubmatch(text); nm != nil {
		if mo, ok := monthNames[strings.ToLower(strings.TrimSuffix(nm[1], "."))]; ok {
			month = mo
			year = resolveYear(mo, day)
		}
	}

	return dateMatch{
		Start: time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Span:  m[1],
	}, true
}

func matchNamedMonth(text string) (dateMatch, bool) {
	m := namedMonthPattern.FindStringSubmatch(text)
	if m == nil {
		return dateMatch{}, false
	}
	month, ok := monthNames[strings.ToLower(strings.TrimSuffix(m[1], "."))]
	if !ok {
		return dateMatch{}, false
	}
	day, _ := strconv.Atoi(m[2])
	if day < 1 || day > 31 {
		return dateMatch{}, false
	}
	year := resolveYear(month, day)
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
	}
	return dateMatch{
		Start: time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Span:  m[0],
	}, true
}

func matchISODate(text string) (dateMatch, bool) {
	m := isoPattern.FindStringSubmatch(text)
	if m == nil {
		return dateMatch{}, false
	}
	t, err := time.Parse("2006-01-02", m[0])
	if err != nil {
		return dateMatch{}, false
	}
	return dateMatch{Start: t, Span: m[0]}, true
}

func matchNumericDate(text string) (dateMatch, bool) {
	m := numericPattern.FindStringSubmatch(text)
	if m == nil {
		return dateMatch{}, false
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return dateMatch{}, false
	}
	var year int
	if m[3] == "" {
		year = resolveYear(time.Month(month), day)
	} else {
		year, _ = strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
	}
	return dateMatch{
		Start: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
		Span:  m[0],
	}, true
}

// resolveYear picks the year for a date written without one. Announcements
// describe upcoming events, so a date more than 30 days in the past rolls
// over to next year.
func resolveYear(month time.Month, day int) int {
	now := time.Now().UTC()
	candidate := time.Date(now.Year(), month, day, 0, 0, 0, 0, time.UTC)
	if candidate.Before(now.AddDate(0, 0, -30)) {
		return now.Year() + 1
	}
	return now.Year()
}

var (
	timeRangePattern  = regexp.MustCompile(`(?i)(?:between\s+)?\b(\d{1,2})(?::(\d{2}))?\s*(a\.?m\.?|p\.?m\.?)?\s*(?:–|—|-|to|until)\s*(\d{1,2})(?::(\d{2}))?\s*(a\.?m\.?|p\.?m\.?)`)
	singleTimePattern = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(a\.?m\.?|p\.?m\.?)`)
	noonPattern       = regexp.MustCompile(`(?i)\bnoon\b`)
)

// morningContextWords suggest an ambiguous leading hour in a range such as
// "9-1 p.m." should read as 9 a.m.
var morningContextWords = []string{"farmers market", "market", "breakfast", "brunch", "sunrise", "morning"}

// matchTime runs the time matchers in priority order: explicit range, single
// time, "noon".
func matchTime(text string) (timeMatch, bool) {
	if m, ok := matchTimeRange(text); ok {
		return m, true
	}
	if m, ok := matchSingleTime(text); ok {
		return m, true
	}
	if loc := noonPattern.FindString(text); loc != "" {
		return timeMatch{Start: "12:00", Span: loc}, true
	}
	return timeMatch{}, false
}

func matchTimeRange(text string) (timeMatch, bool) {
	m := timeRangePattern.FindStringSubmatch(text)
	if m == nil {
		return timeMatch{}, false
	}
	startHour, _ := strconv.Atoi(m[1])
	endHour, _ := strconv.Atoi(m[4])
	if startHour < 1 || startHour > 12 || endHour < 1 || endHour > 12 {
		return timeMatch{}, false
	}
	startMeridiem := normalizeMeridiem(m[3])
	endMeridiem := normalizeMeridiem(m[6])

	if startMeridiem == "" {
		startMeridiem = endMeridiem
		// "9-1 p.m." cannot mean 9 p.m. to 1 p.m.; the only consistent
		// reading puts the start in the opposite half of the day.
		if clockAfter(startHour, atoiSafe(m[2]), endHour, atoiSafe(m[5])) {
			startMeridiem = oppositeMeridiem(endMeridiem)
		} else if endMeridiem == "pm" && startHour <= 11 && hasMorningContext(text) {
			startMeridiem = "am"
		}
	}

	return timeMatch{
		Start: to24(startHour, atoiSafe(m[2]), startMeridiem),
		End:   to24(endHour, atoiSafe(m[5]), endMeridiem),
		Span:  m[0],
	}, true
}

func matchSingleTime(text string) (timeMatch, bool) {
	m := singleTimePattern.FindStringSubmatch(text)
	if m == nil {
		return timeMatch{}, false
	}
	hour, _ := strconv.Atoi(m[1])
	if hour < 1 || hour > 12 {
		return timeMatch{}, false
	}
	return timeMatch{
		Start: to24(hour, atoiSafe(m[2]), normalizeMeridiem(m[3])),
		Span:  m[0],
	}, true
}

func hasMorningContext(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range morningContextWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func normalizeMeridiem(s string) string {
	s = strings.ToLower(strings.ReplaceAll(s, ".", ""))
	if s == "am" || s == "pm" {
		return s
	}
	return ""
}

func oppositeMeridiem(s string) string {
	if s == "am" {
		return "pm"
	}
	return "am"
}

// clockAfter reports whether h1:m1 reads later on a 12-hour clock than h2:m2.
// Hour 12 is the start of the cycle, so "12-1 p.m." is a forward range.
func clockAfter(h1, m1, h2, m2 int) bool {
	h1, h2 = h1%12, h2%12
	if h1 != h2 {
		return h1 > h2
	}
	return m1 > m2
}

func atoiSafe(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// to24 converts a 12-hour clock reading to HH:mm. An empty meridiem leaves
// the hour as written.
func to24(hour, minute int, meridiem string) string {
	switch meridiem {
	case "pm":
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
