package models

import (
	"time"

	"gorm.io/gorm"
)

// Follow records FollowerID following FollowingID.
type Follow struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	FollowerID  string    `json:"followerId" gorm:"not null;index"`
	FollowingID string    `json:"followingId" gorm:"not null;index"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
}

// TableName specifies the table name for Follow Model
func (Follow) TableName() string {
	return "follows"
}

func (f *Follow) BeforeCreate(*gorm.DB) error {
	f.ID = ensureID(f.ID)
	return nil
}

// VideoLike records a like event on a video.
type VideoLike struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"not null;index"`
	VideoID   string    `json:"videoId" gorm:"not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

// TableName specifies the table name for VideoLike Model
func (VideoLike) TableName() string {
	return "video_likes"
}

func (l *VideoLike) BeforeCreate(*gorm.DB) error {
	l.ID = ensureID(l.ID)
	return nil
}

// ProfileVisit records a visit to a creator's profile page.
type ProfileVisit struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	ProfileUserID string    `json:"profileUserId" gorm:"not null;index"`
	VisitorID     string    `json:"visitorId" gorm:"index"`
	CreatedAt     time.Time `json:"createdAt" gorm:"index"`
}

// TableName specifies the table name for ProfileVisit Model
func (ProfileVisit) TableName() string {
	return "profile_visits"
}

func (p *ProfileVisit) BeforeCreate(*gorm.DB) error {
	p.ID = ensureID(p.ID)
	return nil
}

// TransactionType represents what a transaction paid for or recorded
type TransactionType string

const (
	// TransactionView is a recorded view of a video.
	TransactionView           TransactionType = "view"
	TransactionPurchase       TransactionType = "purchase"
	TransactionSeriesPurchase TransactionType = "series_purchase"
)

// TransactionStatus represents the settlement state of a transaction
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
)

// Transaction records views and purchases. VideoID or SeriesID is set
// depending on Type.
type Transaction struct {
	ID        string            `json:"id" gorm:"primaryKey"`
	UserID    string            `json:"userId" gorm:"index"`
	Type      TransactionType   `json:"type" gorm:"not null;index"`
	Status    TransactionStatus `json:"status" gorm:"not null;default:'pending';index"`
	VideoID   *string           `json:"videoId,omitempty" gorm:"index"`
	SeriesID  *string           `json:"seriesId,omitempty" gorm:"index"`
	Amount    float64           `json:"amount" gorm:"not null;default:0"`
	CreatedAt time.Time         `json:"createdAt" gorm:"index"`
}

// TableName specifies the table name for Transaction Model
func (Transaction) TableName() string {
	return "transactions"
}

func (t *Transaction) BeforeCreate(*gorm.DB) error {
	t.ID = ensureID(t.ID)
	return nil
}
