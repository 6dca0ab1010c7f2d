package models

import "time"

// Question represents a prompt published by an operator. At most one
// question is active at any time; QuestionRepository.Activate enforces the
// invariant transactionally.
type Question struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	CategoryID *uint     `gorm:"index" json:"category_id,omitempty"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	IsActive   bool      `gorm:"not null;default:false;index" json:"is_active"`
	// AnswersCount is not persisted; computed at query time
	AnswersCount int       `gorm:"->" json:"answers_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Answers []Answer `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

// TableName specifies the table name for GORM.
func (Question) TableName() string {
	return "questions"
}

// Category is an optional label on a question.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Color       string    `gorm:"size:20" json:"color"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Category) TableName() string {
	return "categories"
}
