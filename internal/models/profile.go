package models

// Profile is the logged-in user's profile as served by the backend
type Profile struct {
	Name string `json:"nombre"`
}

// ProfileUpdate is the payload of a profile save
type ProfileUpdate struct {
	FullName string `json:"nombre_completo"`
}

// LoginRequest is the payload of a login
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SearchRequest is the payload of an AI race search
type SearchRequest struct {
	Name string `json:"nombre"`
}

// ShareToken is the backend answer to a share link request
type ShareToken struct {
	ShareURL string `json:"share_url"`
}
