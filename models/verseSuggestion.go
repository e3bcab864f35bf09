package models

type VerseSuggestionRequest struct {
	Challenge string `json:"challenge" binding:"required,max=1000"`
}

type VerseSuggestion struct {
	Suggested_Verse   string `json:"suggestedVerse"`
	Verse_Explanation string `json:"verseExplanation"`
}
