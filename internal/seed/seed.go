// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"

	"quorum/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers     int
	NumQuestions int
	NumAnswers   int
	ShouldClean  bool
}

var categoryNames = []string{
	"Icebreakers", "Technology", "Food", "Travel", "Music",
	"Movies", "Books", "Work Life", "Hot Takes", "Would You Rather",
}

// Seeder populates the database with generated demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db, SeedOptions{MaxDays: 60}),
	}
}

// ClearAll removes all seeded data. Order matters: children first.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	tables := []string{"likes", "user_activities", "answers", "questions", "categories", "user_profiles", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// SeedUsers creates count users plus one admin account.
func (s *Seeder) SeedUsers(count int) ([]*models.User, error) {
	log.Printf("Creating %d users...", count)

	admin, err := s.factory.CreateUser(func(u *models.User) {
		u.Username = "admin"
		u.Email = "admin@quorum.local"
		u.IsAdmin = true
	})
	if err != nil {
		return nil, fmt.Errorf("creating admin: %w", err)
	}

	users := []*models.User{admin}
	for i := 0; i < count; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("creating user %d: %w", i, err)
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedQuestions creates categories and questions, activating the newest one.
func (s *Seeder) SeedQuestions(count int) ([]*models.Question, error) {
	log.Printf("Creating %d questions...", count)

	var categories []*models.Category
	for _, name := range categoryNames {
		category, err := s.factory.CreateCategory(func(c *models.Category) {
			c.Name = name
		})
		if err != nil {
			return nil, fmt.Errorf("creating category %q: %w", name, err)
		}
		categories = append(categories, category)
	}

	var questions []*models.Question
	for i := 0; i < count; i++ {
		category := categories[gofakeit.Number(0, len(categories)-1)]
		question, err := s.factory.CreateQuestion(category)
		if err != nil {
			return nil, fmt.Errorf("creating question %d: %w", i, err)
		}
		questions = append(questions, question)
	}

	// Exactly one active question: the last one created.
	if len(questions) > 0 {
		last := questions[len(questions)-1]
		if err := s.db.Model(last).Update("is_active", true).Error; err != nil {
			return nil, fmt.Errorf("activating question: %w", err)
		}
		last.IsActive = true
	}
	return questions, nil
}

// SeedEngagement spreads answers and likes across users and questions.
func (s *Seeder) SeedEngagement(users []*models.User, questions []*models.Question, numAnswers int) error {
	log.Printf("Creating %d answers with likes...", numAnswers)
	if len(users) == 0 || len(questions) == 0 {
		return nil
	}

	for i := 0; i < numAnswers; i++ {
		user := users[gofakeit.Number(0, len(users)-1)]
		question := questions[gofakeit.Number(0, len(questions)-1)]

		answer, err := s.factory.CreateAnswer(user, question)
		if err != nil {
			return fmt.Errorf("creating answer %d: %w", i, err)
		}

		// Up to 5 random likers per answer; duplicates are skipped.
		for j := 0; j < gofakeit.Number(0, 5); j++ {
			liker := users[gofakeit.Number(0, len(users)-1)]
			if err := s.factory.CreateLike(liker, answer); err != nil {
				return fmt.Errorf("creating like on answer %d: %w", answer.ID, err)
			}
		}
	}
	return nil
}

// Seed runs a full seeding pass with the given options.
func Seed(db *gorm.DB, opts Options) error {
	s := NewSeeder(db)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.SeedUsers(opts.NumUsers)
	if err != nil {
		return err
	}
	questions, err := s.SeedQuestions(opts.NumQuestions)
	if err != nil {
		return err
	}
	return s.SeedEngagement(users, questions, opts.NumAnswers)
}
