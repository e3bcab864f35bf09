package models

import (
	"bytes"
	"encoding/json"
	"time"
)

type PrayerName string

const (
	Fajr    PrayerName = "Fajr"
	Dhuhr   PrayerName = "Dhuhr"
	Asr     PrayerName = "Asr"
	Maghrib PrayerName = "Maghrib"
	Isha    PrayerName = "Isha"
)

// PrayerNames is the closed set of daily prayers in display order.
var PrayerNames = []PrayerName{Fajr, Dhuhr, Asr, Maghrib, Isha}

func ParsePrayerName(s string) (PrayerName, error) {
	for _, name := range PrayerNames {
		if string(name) == s {
			return name, nil
		}
	}
	return "", NewValidationError("prayer name", "unknown prayer "+s)
}

type PrayerStatus string

const (
	StatusNotMarked PrayerStatus = "NOT_MARKED"
	StatusPrayed    PrayerStatus = "PRAYED"
	StatusNotPrayed PrayerStatus = "NOT_PRAYED"
)

var PrayerStatuses = []PrayerStatus{StatusNotMarked, StatusPrayed, StatusNotPrayed}

func ParsePrayerStatus(s string) (PrayerStatus, error) {
	for _, status := range PrayerStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", NewValidationError("status", "unknown status "+s)
}

type PrayerEntry struct {
	Status          PrayerStatus `json:"status"`
	Completion_Time *time.Time   `json:"completionTime"`
}

type PrayerRecord struct {
	Date    string
	Entries map[PrayerName]PrayerEntry
}

// NewPrayerRecord returns the default record for a day: every prayer
// NOT_MARKED with no completion time.
func NewPrayerRecord(dateKey string) PrayerRecord {
	record := PrayerRecord{
		Date:    dateKey,
		Entries: make(map[PrayerName]PrayerEntry, len(PrayerNames)),
	}
	for _, name := range PrayerNames {
		record.Entries[name] = PrayerEntry{Status: StatusNotMarked}
	}
	return record
}

// CountStatus counts entries in the given status among names.
func (r PrayerRecord) CountStatus(status PrayerStatus, names []PrayerName) int {
	count := 0
	for _, name := range names {
		if r.Entries[name].Status == status {
			count++
		}
	}
	return count
}

// MarshalJSON keeps prayers in display order so clients can render the
// checklist without sorting.
func (r PrayerRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"date":`)
	date, err := json.Marshal(r.Date)
	if err != nil {
		return nil, err
	}
	buf.Write(date)
	for _, name := range PrayerNames {
		entry, err := json.Marshal(r.Entries[name])
		if err != nil {
			return nil, err
		}
		buf.WriteString(`,"` + string(name) + `":`)
		buf.Write(entry)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type PrayerStatusUpdate struct {
	Status string `json:"status" binding:"required,oneof=NOT_MARKED PRAYED NOT_PRAYED"`
}
