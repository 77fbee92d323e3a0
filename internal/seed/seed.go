// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"devconnect/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var statuses = []string{
	"Developer", "Junior Developer", "Senior Developer", "Manager",
	"Student or Learning", "Instructor or Teacher", "Intern",
}

var skillPool = []string{
	"JavaScript", "TypeScript", "Go", "Python", "Rust", "SQL", "HTML", "CSS",
	"React", "Node.js", "PostgreSQL", "Redis", "Docker", "Kubernetes", "AWS",
}

// Seeder populates the database with test data.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data. Child tables go first so foreign keys
// never block the deletes.
func (s *Seeder) ClearAll() error {
	tables := []interface{}{
		&models.Comment{}, &models.Like{}, &models.Post{},
		&models.Experience{}, &models.Education{}, &models.Profile{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().Delete(table).Error; err != nil {
			return fmt.Errorf("failed to clear table %T: %w", table, err)
		}
	}
	log.Println("✓ Existing data cleared")
	return nil
}

// Seed runs the full seeding pipeline.
func (s *Seeder) Seed(opts Options) error {
	log.Printf("🌱 Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.createUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	profiles, err := s.createProfiles(users)
	if err != nil {
		return fmt.Errorf("failed to create profiles: %w", err)
	}
	log.Printf("✓ %d profiles created", profiles)

	posts, err := s.createPosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := s.createEngagement(users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	log.Println("✓ Likes and comments created")

	return nil
}

func gravatar(email string) string {
	hash := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=200&r=pg&d=mm", hex.EncodeToString(hash[:]))
}

func (s *Seeder) createUsers(count int) ([]*models.User, error) {
	// All seeded users share a known password for local testing.
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		name := gofakeit.Name()
		email := fmt.Sprintf("user%d@%s", i, gofakeit.DomainName())
		user := &models.User{
			Name:     name,
			Email:    email,
			Password: string(hashed),
			Avatar:   gravatar(email),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) pickSkills() []string {
	n := 3 + s.rng.Intn(5)
	picked := make([]string, 0, n)
	for _, idx := range s.rng.Perm(len(skillPool))[:n] {
		picked = append(picked, skillPool[idx])
	}
	return picked
}

// createProfiles gives roughly four of five users a developer profile, with
// a sprinkling of experience and education entries.
func (s *Seeder) createProfiles(users []*models.User) (int, error) {
	created := 0
	for _, user := range users {
		if s.rng.Intn(5) == 0 {
			continue
		}

		profile := &models.Profile{
			UserID:   user.ID,
			Company:  gofakeit.Company(),
			Location: fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
			Status:   statuses[s.rng.Intn(len(statuses))],
			Skills:   s.pickSkills(),
			Bio:      gofakeit.Sentence(12),
			Website:  gofakeit.URL(),
			GithubUsername: strings.ToLower(strings.ReplaceAll(
				gofakeit.Username(), ".", "")),
			Social: models.SocialLinks{
				Twitter:  "https://twitter.com/" + gofakeit.Username(),
				Linkedin: "https://linkedin.com/in/" + gofakeit.Username(),
			},
		}
		if err := s.db.Create(profile).Error; err != nil {
			return created, err
		}
		created++

		for i := 0; i < 1+s.rng.Intn(3); i++ {
			from := gofakeit.DateRange(
				time.Now().AddDate(-10, 0, 0), time.Now().AddDate(-1, 0, 0))
			exp := &models.Experience{
				ProfileID:   profile.ID,
				Title:       gofakeit.JobTitle(),
				Company:     gofakeit.Company(),
				Location:    gofakeit.City(),
				From:        from,
				Current:     i == 0,
				Description: gofakeit.Sentence(10),
			}
			if !exp.Current {
				to := gofakeit.DateRange(from, time.Now())
				exp.To = &to
			}
			if err := s.db.Create(exp).Error; err != nil {
				return created, err
			}
		}

		if s.rng.Intn(2) == 0 {
			from := gofakeit.DateRange(
				time.Now().AddDate(-15, 0, 0), time.Now().AddDate(-5, 0, 0))
			to := from.AddDate(4, 0, 0)
			edu := &models.Education{
				ProfileID:   profile.ID,
				School:      gofakeit.Company() + " University",
				Degree:      "BSc Computer Science",
				From:        from,
				To:          &to,
				Description: gofakeit.Sentence(8),
			}
			if err := s.db.Create(edu).Error; err != nil {
				return created, err
			}
		}
	}
	return created, nil
}

func (s *Seeder) createPosts(users []*models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[s.rng.Intn(len(users))]
		post := &models.Post{
			Text:      gofakeit.Paragraph(1, 2, 8, " "),
			Name:      author.Name,
			Avatar:    author.Avatar,
			UserID:    author.ID,
			CreatedAt: time.Now().Add(-time.Duration(s.rng.Intn(90*24)) * time.Hour),
		}
		if err := s.db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// createEngagement sprinkles likes and comments across posts. Likes respect
// the one-per-user rule by sampling distinct users.
func (s *Seeder) createEngagement(users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		numLikes := s.rng.Intn(min(len(users), 10))
		for _, idx := range s.rng.Perm(len(users))[:numLikes] {
			like := &models.Like{UserID: users[idx].ID, PostID: post.ID}
			if err := s.db.Create(like).Error; err != nil {
				return err
			}
		}

		for i := 0; i < s.rng.Intn(4); i++ {
			commenter := users[s.rng.Intn(len(users))]
			comment := &models.Comment{
				Text:   gofakeit.Sentence(10),
				Name:   commenter.Name,
				Avatar: commenter.Avatar,
				UserID: commenter.ID,
				PostID: post.ID,
			}
			if err := s.db.Create(comment).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
