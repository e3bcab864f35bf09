package models

type StatPeriod string

const (
	PeriodDaily   StatPeriod = "daily"
	PeriodWeekly  StatPeriod = "weekly"
	PeriodMonthly StatPeriod = "monthly"
)

func ParseStatPeriod(s string) (StatPeriod, error) {
	switch StatPeriod(s) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return StatPeriod(s), nil
	}
	return "", NewValidationError("period", "expected daily, weekly or monthly")
}

// FilterAll selects every prayer; any other filter is a single prayer name.
const FilterAll = "all"

// ParseStatFilter resolves a filter value to the prayers it selects.
func ParseStatFilter(s string) ([]PrayerName, error) {
	if s == "" || s == FilterAll {
		return PrayerNames, nil
	}
	name, err := ParsePrayerName(s)
	if err != nil {
		return nil, NewValidationError("filter", "expected all or a prayer name")
	}
	return []PrayerName{name}, nil
}

const (
	BucketPrayed    = "Prayed"
	BucketNotPrayed = "Not Prayed"
	BucketNotMarked = "Not Marked"
)

// StatBucket is one chart point. Exactly one of Date, Week or Name is set
// depending on the period it was computed for.
type StatBucket struct {
	Date  string `json:"date,omitempty"`
	Week  string `json:"week,omitempty"`
	Name  string `json:"name,omitempty"`
	Count int    `json:"count"`
}
