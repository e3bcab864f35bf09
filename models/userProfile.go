package models

import "time"

// UserProfile is the users/{userId} document. Absent strings are "".
type UserProfile struct {
	User_ID         string     `json:"userId" db:"user_id" firestore:"-"`
	Display_Name    string     `json:"displayName" db:"display_name" firestore:"displayName"`
	Email           string     `json:"email" db:"email" firestore:"email"`
	Phone_Number    string     `json:"phoneNumber" db:"phone_number" firestore:"phoneNumber"`
	Photo_URL       string     `json:"photoURL" db:"photo_url" firestore:"photoURL"`
	Datetime_Update *time.Time `json:"datetimeUpdate,omitempty" db:"datetime_update" firestore:"datetimeUpdate,omitempty"`
}

// UserProfileUpdate is a partial update: nil fields are left untouched.
type UserProfileUpdate struct {
	Display_Name *string `json:"displayName" binding:"omitempty,displayname"`
	Email        *string `json:"email" binding:"omitempty,eq=|email"`
	Phone_Number *string `json:"phoneNumber" binding:"omitempty,phone"`
	Photo_URL    *string `json:"photoURL" binding:"omitempty,eq=|url"`
}

// Fields returns the document fields this update sets, keyed by their
// stored name.
func (u UserProfileUpdate) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if u.Display_Name != nil {
		fields["displayName"] = *u.Display_Name
	}
	if u.Email != nil {
		fields["email"] = *u.Email
	}
	if u.Phone_Number != nil {
		fields["phoneNumber"] = *u.Phone_Number
	}
	if u.Photo_URL != nil {
		fields["photoURL"] = *u.Photo_URL
	}
	return fields
}

func (u UserProfileUpdate) IsEmpty() bool {
	return len(u.Fields()) == 0
}

// AuthUser is what CheckAuth stores as the current user.
type AuthUser struct {
	User_ID string `json:"userId"`
	Email   string `json:"email"`
	Admin   bool   `json:"admin"`
}
