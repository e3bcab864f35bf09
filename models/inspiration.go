package models

type DailyInspiration struct {
	ID       string `json:"id" db:"inspiration_id" firestore:"-"`
	Type     string `json:"type" db:"inspiration_type" firestore:"type"`
	Content  string `json:"content" db:"content" firestore:"content"`
	Source   string `json:"source" db:"source" firestore:"source"`
	Category string `json:"category,omitempty" db:"category" firestore:"category,omitempty"`
}

const (
	InspirationTypeQuote = "quote"
	InspirationTypeVerse = "verse"
)
