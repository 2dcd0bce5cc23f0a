package model

// Settings holds one user's notification preferences.
type Settings struct {
	ID                 uint    `gorm:"primaryKey" json:"id"`
	UserID             string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"userId"`
	EmailNotifications bool    `gorm:"not null;default:false" json:"emailNotifications"`
	NotificationEmail  *string `gorm:"type:text" json:"notificationEmail"`
}

func (Settings) TableName() string {
	return "settings"
}
