// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"wanderlog/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts, nextID: 1000}
}

var tagPool = []string{
	"backpacking", "roadtrip", "hiking", "food", "street-photography",
	"solo-travel", "budget", "luxury", "beach", "mountains", "city-break",
	"wildlife", "culture", "history", "camping", "island-hopping",
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:       gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:          gofakeit.Email(),
		Bio:            gofakeit.Sentence(10),
		ProfilePicture: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "Password123!abc"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("Password123!abc"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Username, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildTravelLog constructs a travel log struct without persisting it.
// Useful for batching.
func (f *Factory) BuildTravelLog(user *models.User, overrides ...func(*models.TravelLog)) *models.TravelLog {
	city := gofakeit.City()
	country := gofakeit.Country()

	logEntry := &models.TravelLog{
		Title:       fmt.Sprintf("%s in %s", gofakeit.HipsterWord(), city),
		Description: gofakeit.Paragraph(2, 4, 8, "\n"),
		Location:    fmt.Sprintf("%s, %s", city, country),
		Tags:        randomTags(),
		ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/1200/800", gofakeit.UUID()),
		UserID:      user.ID,
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	// #nosec G404: acceptable for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	daysBack := r.Intn(maxDays)
	hoursBack := r.Intn(24)
	minsBack := r.Intn(60)
	logEntry.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(logEntry)
	}
	return logEntry
}

// CreateTravelLog constructs and persists a sample `models.TravelLog` for the
// given user.
func (f *Factory) CreateTravelLog(user *models.User, overrides ...func(*models.TravelLog)) (*models.TravelLog, error) {
	logEntry := f.BuildTravelLog(user, overrides...)

	if f.opts.DryRun {
		f.nextID++
		logEntry.ID = f.nextID
		log.Printf("[dry-run] CreateTravelLog: user=%d title=%q", logEntry.UserID, logEntry.Title)
		return logEntry, nil
	}

	if err := f.db.Create(logEntry).Error; err != nil {
		return nil, err
	}
	return logEntry, nil
}

// CreateTravelLogsBatch persists multiple logs in a single DB call when possible.
func (f *Factory) CreateTravelLogsBatch(logs []*models.TravelLog) error {
	if f.opts.DryRun {
		for _, l := range logs {
			f.nextID++
			l.ID = f.nextID
		}
		log.Printf("[dry-run] CreateTravelLogsBatch: %d logs (no DB write)", len(logs))
		return nil
	}
	return f.db.Create(&logs).Error
}

// CreateComment constructs and persists a sample `models.Comment` on the
// provided travel log authored by the provided user.
func (f *Factory) CreateComment(user *models.User, logEntry *models.TravelLog, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content:     gofakeit.Sentence(8),
		UserID:      user.ID,
		TravelLogID: logEntry.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if f.opts.DryRun {
		f.nextID++
		comment.ID = f.nextID
		return comment, nil
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from `user` on `logEntry`. Duplicate likes are
// ignored to keep the membership set property intact.
func (f *Factory) CreateLike(user *models.User, logEntry *models.TravelLog) error {
	if f.opts.DryRun {
		return nil
	}
	return f.db.Exec(
		`INSERT INTO likes (user_id, travel_log_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (user_id, travel_log_id) DO NOTHING`,
		user.ID, logEntry.ID,
	).Error
}

func randomTags() []string {
	// #nosec G404: acceptable for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	n := r.Intn(4) + 1
	picked := make([]string, 0, n)
	seen := make(map[string]bool, n)
	for len(picked) < n {
		tag := tagPool[r.Intn(len(tagPool))]
		if seen[tag] {
			continue
		}
		seen[tag] = true
		picked = append(picked, tag)
	}
	return picked
}

func generateUsername(first, last string) string {
	// #nosec G404: acceptable for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	formats := []string{"%s%s", "%s.%s", "%s_%s"}
	format := formats[r.Intn(len(formats))]
	return strings.ToLower(fmt.Sprintf(format, first, last))
}
