package models

import "time"

// CurrentSchemaVersion is written into every record this service creates.
// Version 1 documents were written by the original web client and store a
// boolean `completed` plus `timestamp` per prayer.
const CurrentSchemaVersion = 2

const (
	fieldStatus         = "status"
	fieldCompletionTime = "completionTime"
	fieldLegacyComplete = "completed"
	fieldLegacyTime     = "timestamp"
)

// DecodePrayerRecord normalizes a stored document of any known shape into a
// complete five-entry PrayerRecord. It never fails: anything it does not
// recognize decodes to NOT_MARKED.
func DecodePrayerRecord(dateKey string, raw map[string]interface{}) PrayerRecord {
	record := NewPrayerRecord(dateKey)
	for _, name := range PrayerNames {
		fields, ok := raw[string(name)].(map[string]interface{})
		if !ok {
			continue
		}
		record.Entries[name] = decodePrayerEntry(fields)
	}
	return record
}

// A legacy document that later received a partial update carries both
// shapes side by side, so the shape is picked per entry.
func decodePrayerEntry(fields map[string]interface{}) PrayerEntry {
	if _, ok := fields[fieldStatus]; ok {
		return decodeEntryV2(fields)
	}
	return decodeEntryV1(fields)
}

func decodeEntryV2(fields map[string]interface{}) PrayerEntry {
	s, _ := fields[fieldStatus].(string)
	status, err := ParsePrayerStatus(s)
	if err != nil {
		return PrayerEntry{Status: StatusNotMarked}
	}
	return withCompletionTime(status, fields[fieldCompletionTime])
}

func decodeEntryV1(fields map[string]interface{}) PrayerEntry {
	completed, _ := fields[fieldLegacyComplete].(bool)
	if !completed {
		return PrayerEntry{Status: StatusNotMarked}
	}
	return withCompletionTime(StatusPrayed, fields[fieldLegacyTime])
}

func withCompletionTime(status PrayerStatus, v interface{}) PrayerEntry {
	entry := PrayerEntry{Status: status}
	if status != StatusPrayed {
		return entry
	}
	if t, ok := decodeTimestamp(v); ok {
		entry.Completion_Time = &t
	}
	return entry
}

func decodeTimestamp(v interface{}) (time.Time, bool) {
	switch ts := v.(type) {
	case time.Time:
		return ts, !ts.IsZero()
	case *time.Time:
		if ts == nil || ts.IsZero() {
			return time.Time{}, false
		}
		return *ts, true
	case string:
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// EncodePrayerRecord renders the current document shape. Completion times
// that are still nil on PRAYED entries are left for the store to stamp.
func EncodePrayerRecord(record PrayerRecord) map[string]interface{} {
	doc := map[string]interface{}{
		"date":          record.Date,
		"schemaVersion": CurrentSchemaVersion,
	}
	for _, name := range PrayerNames {
		entry, ok := record.Entries[name]
		if !ok {
			entry = PrayerEntry{Status: StatusNotMarked}
		}
		doc[string(name)] = EncodePrayerEntry(entry)
	}
	return doc
}

func EncodePrayerEntry(entry PrayerEntry) map[string]interface{} {
	var completion interface{}
	if entry.Status == StatusPrayed && entry.Completion_Time != nil {
		completion = *entry.Completion_Time
	}
	return map[string]interface{}{
		fieldStatus:         string(entry.Status),
		fieldCompletionTime: completion,
	}
}

// StatusFieldPath and CompletionTimeFieldPath are the dot paths a partial
// update touches for one prayer.
func StatusFieldPath(name PrayerName) string {
	return string(name) + "." + fieldStatus
}

func CompletionTimeFieldPath(name PrayerName) string {
	return string(name) + "." + fieldCompletionTime
}
