package stores

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Mawaqit/models"
)

var errInjected = errors.New("injected backend failure")

// MemoryStore keeps documents in process. It backs STORE_BACKEND=memory and
// the service tests.
type MemoryStore struct {
	mu           sync.Mutex
	docs         map[string]RawDocument
	inspirations []models.DailyInspiration
	now          func() time.Time

	// FailOn makes any operation touching a path containing the given
	// substring fail with a storage error.
	FailOn string
	// Reads and Writes count backend round trips.
	Reads  int
	Writes int
}

func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{docs: make(map[string]RawDocument), now: now}
}

func (s *MemoryStore) check(op, path string) error {
	if s.FailOn != "" && strings.Contains(path, s.FailOn) {
		return models.NewStorageError(op+" "+path, errInjected)
	}
	return nil
}

// Put stores raw as-is, bypassing normalization. Tests use it to plant
// legacy or partial documents.
func (s *MemoryStore) Put(path string, raw RawDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[path] = copyDocument(raw)
}

func (s *MemoryStore) Get(path string) (RawDocument, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[path]
	return copyDocument(doc), ok
}

func (s *MemoryStore) GetPrayerRecord(ctx context.Context, userID, dateKey string) (RawDocument, bool, error) {
	path := PrayerRecordPath(userID, dateKey)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reads++
	if err := s.check("get", path); err != nil {
		return nil, false, err
	}
	doc, ok := s.docs[path]
	if !ok {
		return nil, false, nil
	}
	return copyDocument(doc), true, nil
}

func (s *MemoryStore) GetPrayerRecords(ctx context.Context, userID string, dateKeys []string) (map[string]RawDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reads++
	found := make(map[string]RawDocument, len(dateKeys))
	for _, key := range dateKeys {
		path := PrayerRecordPath(userID, key)
		if err := s.check("get all", path); err != nil {
			return nil, err
		}
		if doc, ok := s.docs[path]; ok {
			found[key] = copyDocument(doc)
		}
	}
	return found, nil
}

func (s *MemoryStore) CreatePrayerRecord(ctx context.Context, userID string, record models.PrayerRecord) (bool, error) {
	path := PrayerRecordPath(userID, record.Date)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Writes++
	if err := s.check("create", path); err != nil {
		return false, err
	}
	if _, exists := s.docs[path]; exists {
		return false, nil
	}
	doc := models.EncodePrayerRecord(record)
	for _, name := range models.PrayerNames {
		entry := record.Entries[name]
		if entry.Status == models.StatusPrayed && entry.Completion_Time == nil {
			doc[string(name)].(map[string]interface{})["completionTime"] = s.now()
		}
	}
	s.docs[path] = doc
	return true, nil
}

func (s *MemoryStore) UpdatePrayerEntry(ctx context.Context, userID, dateKey string, name models.PrayerName, status models.PrayerStatus) error {
	path := PrayerRecordPath(userID, dateKey)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Writes++
	if err := s.check("update", path); err != nil {
		return err
	}
	doc, ok := s.docs[path]
	if !ok {
		return models.NewStorageError("update "+path, models.ErrNotFound)
	}
	fields, _ := doc[string(name)].(map[string]interface{})
	if fields == nil {
		fields = make(map[string]interface{})
		doc[string(name)] = fields
	}
	fields["status"] = string(status)
	if status == models.StatusPrayed {
		fields["completionTime"] = s.now()
	} else {
		fields["completionTime"] = nil
	}
	return nil
}

func (s *MemoryStore) GetUserProfile(ctx context.Context, userID string) (models.UserProfile, bool, error) {
	path := UserProfilePath(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reads++
	if err := s.check("get", path); err != nil {
		return models.UserProfile{}, false, err
	}
	doc, ok := s.docs[path]
	if !ok {
		return models.UserProfile{User_ID: userID}, false, nil
	}
	profile := models.UserProfile{User_ID: userID}
	profile.Display_Name, _ = doc["displayName"].(string)
	profile.Email, _ = doc["email"].(string)
	profile.Phone_Number, _ = doc["phoneNumber"].(string)
	profile.Photo_URL, _ = doc["photoURL"].(string)
	if t, ok := doc["datetimeUpdate"].(time.Time); ok {
		profile.Datetime_Update = &t
	}
	return profile, true, nil
}

func (s *MemoryStore) MergeUserProfile(ctx context.Context, userID string, update models.UserProfileUpdate) error {
	path := UserProfilePath(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Writes++
	if err := s.check("merge", path); err != nil {
		return err
	}
	doc, ok := s.docs[path]
	if !ok {
		doc = make(RawDocument)
		s.docs[path] = doc
	}
	for k, v := range update.Fields() {
		doc[k] = v
	}
	doc["datetimeUpdate"] = s.now()
	return nil
}

func (s *MemoryStore) ListInspirations(ctx context.Context) ([]models.DailyInspiration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reads++
	if err := s.check("list", "daily_inspirations"); err != nil {
		return nil, err
	}
	out := make([]models.DailyInspiration, len(s.inspirations))
	copy(out, s.inspirations)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) SeedInspirations(ctx context.Context, inspirations []models.DailyInspiration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Writes++
	if err := s.check("seed", "daily_inspirations"); err != nil {
		return err
	}
	existing := make(map[string]int, len(s.inspirations))
	for i, insp := range s.inspirations {
		existing[insp.ID] = i
	}
	for _, insp := range inspirations {
		if i, ok := existing[insp.ID]; ok {
			s.inspirations[i] = insp
			continue
		}
		s.inspirations = append(s.inspirations, insp)
	}
	return nil
}

func copyDocument(doc RawDocument) RawDocument {
	if doc == nil {
		return nil
	}
	out := make(RawDocument, len(doc))
	for k, v := range doc {
		if nested, ok := v.(map[string]interface{}); ok {
			out[k] = copyDocument(nested)
			continue
		}
		out[k] = v
	}
	return out
}

// MemoryImageStore is the ImageStore used when Firebase Storage is not
// configured.
type MemoryImageStore struct {
	mu      sync.Mutex
	BaseURL string
	Objects map[string][]byte
}

func NewMemoryImageStore(baseURL string) *MemoryImageStore {
	return &MemoryImageStore{BaseURL: strings.TrimSuffix(baseURL, "/"), Objects: make(map[string][]byte)}
}

func (s *MemoryImageStore) UploadImage(ctx context.Context, path, contentType string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Objects[path] = append([]byte(nil), data...)
	return s.BaseURL + "/" + path, nil
}

func (s *MemoryImageStore) DeleteImage(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Objects, path)
	return nil
}
