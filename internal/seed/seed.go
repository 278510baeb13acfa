// Package seed populates the database with demo users, posts, and tags.
// It is intended for development environments only.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"juicebox/internal/models"
	"juicebox/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the plaintext password assigned to every seeded user.
const DemoPassword = "password123"

// Options controls how much data the seeder generates.
type Options struct {
	Users        int
	PostsPerUser int
	MaxDays      int // spread of post timestamps into the past
}

// DefaultOptions matches a small but browsable demo dataset.
func DefaultOptions() Options {
	return Options{Users: 10, PostsPerUser: 5, MaxDays: 90}
}

// Seeder builds and persists demo data.
type Seeder struct {
	db   *gorm.DB
	opts Options
	rand *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided database handle.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	src := rand.NewSource(time.Now().UnixNano())
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db, opts: opts, rand: rand.New(src)}
}

// ClearAll removes every seeded row. Join rows go first so foreign keys
// never dangle mid-wipe.
func (s *Seeder) ClearAll() error {
	stmts := []string{
		"DELETE FROM post_tags",
		"DELETE FROM posts",
		"DELETE FROM tags",
		"DELETE FROM users",
	}
	for _, stmt := range stmts {
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("clearing database: %w", err)
		}
	}
	slog.Info("cleared existing data")
	return nil
}

// tagPool is the vocabulary posts draw their tags from. Hash-prefixed names
// exercise percent-encoded tag lookups.
var tagPool = []string{
	"#happy", "#worst-day-ever", "#catmandoeverything", "#sunshine",
	"#youcandoanything", "#canmandoeverything", "travel", "food",
	"golang", "music",
}

// Run seeds users, then posts with tags authored by those users. A handful
// of posts are left inactive so visibility filtering has something to hide.
func (s *Seeder) Run() error {
	users, err := s.seedUsers()
	if err != nil {
		return err
	}
	if err := s.seedPosts(users); err != nil {
		return err
	}
	return nil
}

func (s *Seeder) seedUsers() ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing demo password: %w", err)
	}

	users := make([]models.User, 0, s.opts.Users)
	for i := 0; i < s.opts.Users; i++ {
		username := strings.ToLower(gofakeit.Username())
		if len(username) < 3 {
			username = username + fmt.Sprintf("%02d", i)
		}
		users = append(users, models.User{
			Username: fmt.Sprintf("%s%d", username, i),
			Password: string(hash),
			Name:     gofakeit.Name(),
			Location: fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
			Active:   true,
		})
	}

	if err := s.db.Create(&users).Error; err != nil {
		return nil, fmt.Errorf("seeding users: %w", err)
	}
	slog.Info("seeded users", "count", len(users))
	return users, nil
}

func (s *Seeder) seedPosts(users []models.User) error {
	postRepo := repository.NewPostRepository(s.db)
	maxDays := s.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}

	total := 0
	for _, user := range users {
		for i := 0; i < s.opts.PostsPerUser; i++ {
			post := &models.Post{
				Title:    gofakeit.Sentence(s.rand.Intn(5) + 3),
				Content:  gofakeit.Paragraph(1, 3, 8, "\n"),
				AuthorID: user.ID,
				Active:   s.rand.Intn(10) != 0, // roughly one in ten stays hidden
			}

			tags := s.pickTags()
			if err := postRepo.Create(context.Background(), post, tags); err != nil {
				return fmt.Errorf("seeding post for user %d: %w", user.ID, err)
			}

			// spread created_at into the past for a believable feed
			createdAt := time.Now().Add(-time.Duration(s.rand.Intn(maxDays*24)) * time.Hour)
			if err := s.db.Model(&models.Post{}).Where("id = ?", post.ID).
				Update("created_at", createdAt).Error; err != nil {
				return fmt.Errorf("backdating post %d: %w", post.ID, err)
			}
			total++
		}
	}
	slog.Info("seeded posts", "count", total)
	return nil
}

func (s *Seeder) pickTags() []string {
	n := s.rand.Intn(3) + 1
	picked := make([]string, 0, n)
	seen := map[string]bool{}
	for len(picked) < n {
		tag := tagPool[s.rand.Intn(len(tagPool))]
		if !seen[tag] {
			seen[tag] = true
			picked = append(picked, tag)
		}
	}
	return picked
}
