package model

// UserProfile is the user record served by the profile service.
type UserProfile struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhoneNo  string `json:"phoneno"`
	RoleType string `json:"roletype"`
}

// ProfileUpdate carries the editable profile fields. Empty fields are not sent.
type ProfileUpdate struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNo     string `json:"phoneno,omitempty"`
	Password    string `json:"password,omitempty"`
	OldPassword string `json:"old_password,omitempty"`
}
