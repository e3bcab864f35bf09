package stores

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/charmbracelet/log"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Mawaqit/models"
)

const inspirationsCollection = "daily_inspirations"

// FirestoreStore reads and writes the documents the web client used to
// address directly: users/{uid}, users/{uid}/prayers/{date} and
// daily_inspirations/{id}.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) doc(path string) (*firestore.DocumentRef, error) {
	ref := s.client.Doc(path)
	if ref == nil {
		return nil, models.NewValidationError("document path", path)
	}
	return ref, nil
}

func (s *FirestoreStore) GetPrayerRecord(ctx context.Context, userID, dateKey string) (RawDocument, bool, error) {
	ref, err := s.doc(PrayerRecordPath(userID, dateKey))
	if err != nil {
		return nil, false, err
	}

	snap, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, models.NewStorageError("get "+ref.Path, err)
	}
	return snap.Data(), true, nil
}

func (s *FirestoreStore) GetPrayerRecords(ctx context.Context, userID string, dateKeys []string) (map[string]RawDocument, error) {
	refs := make([]*firestore.DocumentRef, 0, len(dateKeys))
	for _, key := range dateKeys {
		ref, err := s.doc(PrayerRecordPath(userID, key))
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	snaps, err := s.client.GetAll(ctx, refs)
	if err != nil {
		return nil, models.NewStorageError("get all prayers for "+userID, err)
	}

	found := make(map[string]RawDocument, len(snaps))
	for _, snap := range snaps {
		if snap == nil || !snap.Exists() {
			continue
		}
		found[snap.Ref.ID] = snap.Data()
	}
	return found, nil
}

func (s *FirestoreStore) CreatePrayerRecord(ctx context.Context, userID string, record models.PrayerRecord) (bool, error) {
	ref, err := s.doc(PrayerRecordPath(userID, record.Date))
	if err != nil {
		return false, err
	}

	doc := models.EncodePrayerRecord(record)
	for _, name := range models.PrayerNames {
		entry := record.Entries[name]
		if entry.Status == models.StatusPrayed && entry.Completion_Time == nil {
			doc[string(name)].(map[string]interface{})["completionTime"] = firestore.ServerTimestamp
		}
	}

	_, err = ref.Create(ctx, doc)
	if status.Code(err) == codes.AlreadyExists {
		log.Debug("prayer record already exists", "path", ref.Path)
		return false, nil
	}
	if err != nil {
		return false, models.NewStorageError("create "+ref.Path, err)
	}
	return true, nil
}

func (s *FirestoreStore) UpdatePrayerEntry(ctx context.Context, userID, dateKey string, name models.PrayerName, prayerStatus models.PrayerStatus) error {
	ref, err := s.doc(PrayerRecordPath(userID, dateKey))
	if err != nil {
		return err
	}

	var completion interface{}
	if prayerStatus == models.StatusPrayed {
		completion = firestore.ServerTimestamp
	}

	_, err = ref.Update(ctx, []firestore.Update{
		{Path: models.StatusFieldPath(name), Value: string(prayerStatus)},
		{Path: models.CompletionTimeFieldPath(name), Value: completion},
	})
	if err != nil {
		return models.NewStorageError("update "+ref.Path, err)
	}
	return nil
}

func (s *FirestoreStore) GetUserProfile(ctx context.Context, userID string) (models.UserProfile, bool, error) {
	profile := models.UserProfile{User_ID: userID}
	ref, err := s.doc(UserProfilePath(userID))
	if err != nil {
		return profile, false, err
	}

	snap, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return profile, false, nil
	}
	if err != nil {
		return profile, false, models.NewStorageError("get "+ref.Path, err)
	}

	if err := snap.DataTo(&profile); err != nil {
		// Older profile documents may carry fields of unexpected types; fall
		// back to reading the strings we understand.
		log.Warn("profile document did not decode cleanly", "path", ref.Path, "err", err)
		data := snap.Data()
		profile.Display_Name, _ = data["displayName"].(string)
		profile.Email, _ = data["email"].(string)
		profile.Phone_Number, _ = data["phoneNumber"].(string)
		profile.Photo_URL, _ = data["photoURL"].(string)
	}
	profile.User_ID = userID
	return profile, true, nil
}

func (s *FirestoreStore) MergeUserProfile(ctx context.Context, userID string, update models.UserProfileUpdate) error {
	ref, err := s.doc(UserProfilePath(userID))
	if err != nil {
		return err
	}

	fields := update.Fields()
	fields["datetimeUpdate"] = firestore.ServerTimestamp

	if _, err := ref.Set(ctx, fields, firestore.MergeAll); err != nil {
		return models.NewStorageError("merge "+ref.Path, err)
	}
	return nil
}

func (s *FirestoreStore) ListInspirations(ctx context.Context) ([]models.DailyInspiration, error) {
	iter := s.client.Collection(inspirationsCollection).OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var inspirations []models.DailyInspiration
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, models.NewStorageError("list "+inspirationsCollection, err)
		}

		var insp models.DailyInspiration
		if err := snap.DataTo(&insp); err != nil {
			log.Warn("skipping malformed inspiration", "id", snap.Ref.ID, "err", err)
			continue
		}
		insp.ID = snap.Ref.ID
		inspirations = append(inspirations, insp)
	}
	return inspirations, nil
}

func (s *FirestoreStore) SeedInspirations(ctx context.Context, inspirations []models.DailyInspiration) error {
	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(inspirations))
	for _, insp := range inspirations {
		job, err := bw.Set(s.client.Collection(inspirationsCollection).Doc(insp.ID), insp)
		if err != nil {
			bw.End()
			return models.NewStorageError("seed "+inspirationsCollection, err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return models.NewStorageError("seed "+inspirationsCollection, err)
		}
	}
	log.Info("daily inspirations seeded", "count", len(inspirations))
	return nil
}

var _ DocumentStore = (*FirestoreStore)(nil)

