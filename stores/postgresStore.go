package stores

import (
	"context"
	"encoding/json"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/Mawaqit/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS prayer_record (
	user_id         TEXT        NOT NULL,
	date_key        TEXT        NOT NULL,
	document        JSONB       NOT NULL,
	datetime_create TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	datetime_update TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (user_id, date_key)
);

CREATE TABLE IF NOT EXISTS user_profile_doc (
	user_id         TEXT PRIMARY KEY,
	display_name    TEXT NOT NULL DEFAULT '',
	email           TEXT NOT NULL DEFAULT '',
	phone_number    TEXT NOT NULL DEFAULT '',
	photo_url       TEXT NOT NULL DEFAULT '',
	datetime_update TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS daily_inspiration (
	inspiration_id   TEXT PRIMARY KEY,
	inspiration_type TEXT NOT NULL,
	content          TEXT NOT NULL,
	source           TEXT NOT NULL,
	category         TEXT NOT NULL DEFAULT ''
);
`

// mergeEntrySQL rewrites one prayer's status and completionTime inside the
// JSONB document, creating the prayer object when a legacy or partial
// document lacks it and leaving every other key alone.
const mergeEntrySQL = `document || jsonb_build_object(?::text,
	COALESCE(CASE WHEN jsonb_typeof(document -> ?::text) = 'object' THEN document -> ?::text END, '{}'::jsonb)
	|| jsonb_build_object('status', ?::text, 'completionTime', ?::jsonb))`

// PostgresStore keeps the same documents as FirestoreStore in Postgres,
// one JSONB document per prayer record.
type PostgresStore struct {
	db  *goqu.Database
	now func() time.Time
}

func NewPostgresStore(db *goqu.Database, now func() time.Time) *PostgresStore {
	if now == nil {
		now = time.Now
	}
	return &PostgresStore{db: db, now: now}
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return models.NewStorageError("migrate", err)
	}
	return nil
}

type prayerRecordRow struct {
	Date_Key string `db:"date_key"`
	Document []byte `db:"document"`
}

func (s *PostgresStore) GetPrayerRecord(ctx context.Context, userID, dateKey string) (RawDocument, bool, error) {
	var document []byte
	found, err := s.db.From("prayer_record").
		Select("document").
		Where(goqu.C("user_id").Eq(userID), goqu.C("date_key").Eq(dateKey)).
		ScanValContext(ctx, &document)
	if err != nil {
		return nil, false, models.NewStorageError("get "+PrayerRecordPath(userID, dateKey), err)
	}
	if !found {
		return nil, false, nil
	}

	raw, err := decodeDocument(document)
	if err != nil {
		return nil, false, models.NewStorageError("decode "+PrayerRecordPath(userID, dateKey), err)
	}
	return raw, true, nil
}

func (s *PostgresStore) GetPrayerRecords(ctx context.Context, userID string, dateKeys []string) (map[string]RawDocument, error) {
	var rows []prayerRecordRow
	err := s.db.From("prayer_record").
		Select("date_key", "document").
		Where(goqu.C("user_id").Eq(userID), goqu.C("date_key").In(dateKeys)).
		ScanStructsContext(ctx, &rows)
	if err != nil {
		return nil, models.NewStorageError("get all prayers for "+userID, err)
	}

	found := make(map[string]RawDocument, len(rows))
	for _, row := range rows {
		raw, err := decodeDocument(row.Document)
		if err != nil {
			return nil, models.NewStorageError("decode "+PrayerRecordPath(userID, row.Date_Key), err)
		}
		found[row.Date_Key] = raw
	}
	return found, nil
}

func (s *PostgresStore) CreatePrayerRecord(ctx context.Context, userID string, record models.PrayerRecord) (bool, error) {
	doc := models.EncodePrayerRecord(record)
	for _, name := range models.PrayerNames {
		entry := record.Entries[name]
		if entry.Status == models.StatusPrayed && entry.Completion_Time == nil {
			doc[string(name)].(map[string]interface{})["completionTime"] = s.now().UTC()
		}
	}
	document, err := json.Marshal(doc)
	if err != nil {
		return false, err
	}

	var dateKey string
	created, err := s.db.Insert("prayer_record").
		Rows(goqu.Record{
			"user_id":  userID,
			"date_key": record.Date,
			"document": string(document),
		}).
		OnConflict(goqu.DoNothing()).
		Returning("date_key").
		Executor().
		ScanValContext(ctx, &dateKey)
	if err != nil {
		return false, models.NewStorageError("create "+PrayerRecordPath(userID, record.Date), err)
	}
	return created, nil
}

func (s *PostgresStore) UpdatePrayerEntry(ctx context.Context, userID, dateKey string, name models.PrayerName, status models.PrayerStatus) error {
	completion := "null"
	if status == models.StatusPrayed {
		stamp, err := json.Marshal(s.now().UTC())
		if err != nil {
			return err
		}
		completion = string(stamp)
	}

	result, err := s.db.Update("prayer_record").
		Set(goqu.Record{
			"document":        goqu.L(mergeEntrySQL, string(name), string(name), string(name), string(status), completion),
			"datetime_update": goqu.L("NOW()"),
		}).
		Where(goqu.C("user_id").Eq(userID), goqu.C("date_key").Eq(dateKey)).
		Executor().
		ExecContext(ctx)
	if err != nil {
		return models.NewStorageError("update "+PrayerRecordPath(userID, dateKey), err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return models.NewStorageError("update "+PrayerRecordPath(userID, dateKey), models.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) GetUserProfile(ctx context.Context, userID string) (models.UserProfile, bool, error) {
	profile := models.UserProfile{User_ID: userID}
	found, err := s.db.From("user_profile_doc").
		Where(goqu.C("user_id").Eq(userID)).
		ScanStructContext(ctx, &profile)
	if err != nil {
		return profile, false, models.NewStorageError("get "+UserProfilePath(userID), err)
	}
	profile.User_ID = userID
	return profile, found, nil
}

var profileColumns = map[string]string{
	"displayName": "display_name",
	"email":       "email",
	"phoneNumber": "phone_number",
	"photoURL":    "photo_url",
}

func (s *PostgresStore) MergeUserProfile(ctx context.Context, userID string, update models.UserProfileUpdate) error {
	insert := goqu.Record{"user_id": userID, "datetime_update": goqu.L("NOW()")}
	onConflict := goqu.Record{"datetime_update": goqu.L("NOW()")}
	for field, value := range update.Fields() {
		column := profileColumns[field]
		insert[column] = value
		onConflict[column] = goqu.I("excluded." + column)
	}

	_, err := s.db.Insert("user_profile_doc").
		Rows(insert).
		OnConflict(goqu.DoUpdate("user_id", onConflict)).
		Executor().
		ExecContext(ctx)
	if err != nil {
		return models.NewStorageError("merge "+UserProfilePath(userID), err)
	}
	return nil
}

func (s *PostgresStore) ListInspirations(ctx context.Context) ([]models.DailyInspiration, error) {
	var inspirations []models.DailyInspiration
	err := s.db.From("daily_inspiration").
		Order(goqu.C("inspiration_id").Asc()).
		ScanStructsContext(ctx, &inspirations)
	if err != nil {
		return nil, models.NewStorageError("list daily_inspiration", err)
	}
	return inspirations, nil
}

func (s *PostgresStore) SeedInspirations(ctx context.Context, inspirations []models.DailyInspiration) error {
	if len(inspirations) == 0 {
		return nil
	}
	rows := make([]interface{}, 0, len(inspirations))
	for _, insp := range inspirations {
		rows = append(rows, insp)
	}

	_, err := s.db.Insert("daily_inspiration").
		Rows(rows...).
		OnConflict(goqu.DoUpdate("inspiration_id", goqu.Record{
			"inspiration_type": goqu.I("excluded.inspiration_type"),
			"content":          goqu.I("excluded.content"),
			"source":           goqu.I("excluded.source"),
			"category":         goqu.I("excluded.category"),
		})).
		Executor().
		ExecContext(ctx)
	if err != nil {
		return models.NewStorageError("seed daily_inspiration", err)
	}
	return nil
}

func decodeDocument(document []byte) (RawDocument, error) {
	var raw RawDocument
	if err := json.Unmarshal(document, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

var _ DocumentStore = (*PostgresStore)(nil)
