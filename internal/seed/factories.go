// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"inkpulse/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var niches = []string{
	"web development", "distributed systems", "cooking", "travel",
	"photography", "personal finance", "machine learning", "gardening",
	"fitness", "indie games",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for seeding
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser constructs and persists a sample user. All seeded users share
// the password "password123".
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	user := &models.User{
		Name:            gofakeit.Name(),
		Email:           fmt.Sprintf("%s%d@example.com", strings.ToLower(gofakeit.Username()), gofakeit.Number(100, 999)),
		Password:        string(hashed),
		ProfilePic:      fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Niche:           niches[f.r.Intn(len(niches))],
		Bio:             gofakeit.Sentence(12),
		ProfileComplete: f.r.Float32() < 0.7,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost constructs and persists a sample post for the given author.
// Roughly one in five posts stays a draft.
func (f *Factory) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	status := models.PostStatusPublished
	if f.r.Float32() < 0.2 {
		status = models.PostStatusDraft
	}

	post := &models.Post{
		Title:    gofakeit.Sentence(6),
		Content:  htmlParagraphs(f.r.Intn(4) + 1),
		Tags:     f.tags(),
		AuthorID: author.ID,
		Status:   status,
	}
	if f.r.Float32() < 0.4 {
		post.PostPic = fmt.Sprintf("https://picsum.photos/seed/%s/800/450", gofakeit.UUID())
	}

	// realistic created_at spread over the last 90 days
	daysBack := f.r.Intn(90)
	hoursBack := f.r.Intn(24)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment constructs and persists a sample comment on the provided
// post authored by the provided user.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(10),
		UserID:  user.ID,
		PostID:  post.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from user on post. Duplicate pairs are
// rejected by the unique index, so callers picking random pairs should
// tolerate an error here.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	return f.db.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error
}

func (f *Factory) tags() []string {
	n := f.r.Intn(4) + 1
	tags := make([]string, 0, n)
	for i := 0; i < n; i++ {
		tags = append(tags, strings.ToLower(gofakeit.BuzzWord()))
	}
	return tags
}

func htmlParagraphs(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteString("<p>")
		sb.WriteString(gofakeit.Paragraph(1, 3, 8, " "))
		sb.WriteString("</p>")
	}
	return sb.String()
}
