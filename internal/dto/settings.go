package dto

// UpdateSettingsRequest is a partial settings patch. Nil fields are left
// untouched.
type UpdateSettingsRequest struct {
	EmailNotifications *bool   `json:"emailNotifications"`
	NotificationEmail  *string `json:"notificationEmail" validate:"omitempty,email"`
}
