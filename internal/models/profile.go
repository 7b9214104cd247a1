package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/profilsaya/backend/internal/theme"
)

// DefaultSecondaryBg is stored when a save leaves the secondary background empty
const DefaultSecondaryBg = "bg-secondary"

// Profile holds the public attributes of a page. It is one-to-one with a
// user and is only ever written together with its links and theme.
type Profile struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"-"`
	UserID      string    `gorm:"size:64;not null;uniqueIndex" json:"user_id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Bio         string    `gorm:"type:text" json:"bio"`
	AvatarURL   string    `gorm:"size:1024" json:"avatar_url"`
	Verified    bool      `gorm:"not null" json:"verified"`
	SecondaryBg string    `gorm:"size:64" json:"secondary_bg"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Link is one entry of a page's link list. ClientID is chosen by the editor;
// Order is the position in the list at save time.
type Link struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"-"`
	UserID    string    `gorm:"size:64;not null;index" json:"user_id"`
	ClientID  string    `gorm:"size:64;not null" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	URL       string    `gorm:"size:2048;not null" json:"url"`
	Order     int       `gorm:"column:sort_order;not null" json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Link) TableName() string {
	return "links"
}

func (l *Link) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// Theme is the persisted theme of a page.
type Theme struct {
	ID     uuid.UUID `gorm:"type:varchar(36);primarykey" json:"-"`
	UserID string    `gorm:"size:64;not null;uniqueIndex" json:"user_id"`
	theme.Settings
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Theme) TableName() string {
	return "themes"
}

func (t *Theme) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// DefaultTheme is the compiled-in theme stamped with userID. It is not
// persisted.
func DefaultTheme(userID string) Theme {
	return Theme{UserID: userID, Settings: theme.Defaults()}
}

// UserProfile is the read-time aggregate of a page. Links are ordered by
// Order ascending.
type UserProfile struct {
	Profile Profile `json:"profile"`
	Links   []Link  `json:"links"`
	Theme   Theme   `json:"theme"`
}
