package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"wanderlog/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers       int
	NumLogs        int
	CommentsPerLog int
	// LikeRatio is the fraction of users that like each log, 0..1.
	LikeRatio   float64
	ShouldClean bool
	DryRun      bool
	SkipBcrypt  bool
	// MaxDays spreads generated created_at timestamps over the past N days.
	MaxDays int
}

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	opts    Options
}

// NewSeeder creates a Seeder with the given options.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts), opts: opts}
}

// ClearAll truncates all seeded tables. Destructive; development only.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, travel_logs, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// Run populates the database with users, travel logs, comments and likes.
func (s *Seeder) Run() error {
	log.Printf("Starting database seeding with %d users and %d travel logs...", s.opts.NumUsers, s.opts.NumLogs)

	if s.opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := s.seedUsers(s.opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d users created", len(users))

	logs, err := s.seedTravelLogs(users, s.opts.NumLogs)
	if err != nil {
		return fmt.Errorf("failed to create travel logs: %w", err)
	}
	log.Printf("%d travel logs created", len(logs))

	if err := s.seedEngagement(users, logs); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}

	log.Println("Database seeding completed successfully")
	return nil
}

// seedUsers creates count users. A few fixed accounts are always included so
// developers have predictable logins.
func (s *Seeder) seedUsers(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	if count >= 3 {
		for _, name := range []string{"ana", "ben", "test"} {
			username := name
			user, err := s.factory.CreateUser(func(u *models.User) {
				u.Username = username
				u.Email = fmt.Sprintf("%s@example.com", username)
				u.Bio = "One of the first wanderers."
				u.ProfilePicture = fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username)
			})
			if err != nil {
				log.Printf("Failed to create user %s: %v", username, err)
				continue
			}
			users = append(users, user)
		}
	}

	for i := len(users); i < count; i++ {
		// keep usernames roughly unique across runs
		suffix := i
		user, err := s.factory.CreateUser(func(u *models.User) {
			u.Username = fmt.Sprintf("%s%d", generateUsername(gofakeit.FirstName(), gofakeit.LastName()), suffix)
			u.Email = fmt.Sprintf("%s@example.com", u.Username)
		})
		if err != nil {
			log.Printf("Failed to create user #%d: %v", i, err)
			continue
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

func (s *Seeder) seedTravelLogs(users []*models.User, count int) ([]*models.TravelLog, error) {
	if len(users) == 0 {
		return nil, nil
	}
	// #nosec G404: acceptable for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	logs := make([]*models.TravelLog, 0, count)
	for i := 0; i < count; i++ {
		logs = append(logs, s.factory.BuildTravelLog(users[r.Intn(len(users))]))
	}

	const batchSize = 200
	for start := 0; start < len(logs); start += batchSize {
		end := start + batchSize
		if end > len(logs) {
			end = len(logs)
		}
		batch := logs[start:end]
		if err := s.factory.CreateTravelLogsBatch(batch); err != nil {
			return nil, err
		}
	}
	return logs, nil
}

// seedEngagement sprinkles comments and likes across the given logs.
func (s *Seeder) seedEngagement(users []*models.User, logs []*models.TravelLog) error {
	if len(users) == 0 || len(logs) == 0 {
		return nil
	}
	// #nosec G404: acceptable for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	commentsPerLog := s.opts.CommentsPerLog
	if commentsPerLog <= 0 {
		commentsPerLog = 3
	}
	likeRatio := s.opts.LikeRatio
	if likeRatio <= 0 {
		likeRatio = 0.2
	}

	var comments, likes int
	for _, logEntry := range logs {
		for i := 0; i < r.Intn(commentsPerLog+1); i++ {
			commenter := users[r.Intn(len(users))]
			if _, err := s.factory.CreateComment(commenter, logEntry); err != nil {
				return err
			}
			comments++
		}
		for _, user := range users {
			if r.Float64() >= likeRatio {
				continue
			}
			if err := s.factory.CreateLike(user, logEntry); err != nil {
				return err
			}
			likes++
		}
	}

	log.Printf("%d comments and %d likes created", comments, likes)
	return nil
}
