package models

import "time"

// Activity actions recorded in the append-only user activity log.
const (
	ActivityLogin           = "login"
	ActivityAnswerSubmitted = "answer_submitted"
	ActivityAnswerEdited    = "answer_edited"
	ActivityLikeToggled     = "like_toggled"
)

// UserActivity is an append-only audit record of user actions. Rows are
// written best-effort outside the transactions they describe; aggregate
// statistics are derived from the primary tables, not from this log.
type UserActivity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Action    string    `gorm:"size:40;not null" json:"action"`
	SubjectID *uint     `json:"subject_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM.
func (UserActivity) TableName() string {
	return "user_activities"
}

// Stats is the aggregate counters payload served by /api/stats.
type Stats struct {
	TotalQuestions   int64 `json:"total_questions"`
	TotalAnswers     int64 `json:"total_answers"`
	TotalLikes       int64 `json:"total_likes"`
	ActiveUsersToday int64 `json:"active_users_today"`
}
