// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password assigned to every seeded account.
const DefaultPassword = "password123"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rnd *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user with an active profile.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: string(hash),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}

	profile := &models.Profile{
		UserID:        user.ID,
		Avatar:        fmt.Sprintf("https://i.pravatar.cc/150/%s.png", gofakeit.UUID()),
		Bio:           gofakeit.Sentence(10),
		ActiveProfile: true,
	}
	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	user.Profile = profile
	return user, nil
}

// CreateArticle constructs and persists a sample article for the author,
// with a realistic created_at spread over the past 90 days.
func (f *Factory) CreateArticle(author *models.User, overrides ...func(*models.Article)) (*models.Article, error) {
	title := gofakeit.Sentence(6)
	article := &models.Article{
		Slug:        fmt.Sprintf("%s-%d", validation.Slugify(title), gofakeit.Number(1000, 9999)),
		Title:       title,
		Description: gofakeit.Sentence(12),
		Body:        gofakeit.Paragraph(2, 4, 8, "\n\n"),
		AuthorID:    author.ID,
	}

	daysBack := f.rnd.Intn(90)
	hoursBack := f.rnd.Intn(24)
	article.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(article)
	}
	if err := f.db.Create(article).Error; err != nil {
		return nil, err
	}
	return article, nil
}

// CreateComment constructs and persists a comment on the article.
func (f *Factory) CreateComment(author *models.User, article *models.Article, parentID *uint) (*models.Comment, error) {
	comment := &models.Comment{
		Body:      gofakeit.Sentence(14),
		ArticleID: article.ID,
		AuthorID:  author.ID,
		ParentID:  parentID,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateReaction persists a like or dislike from the user on the article.
func (f *Factory) CreateReaction(user *models.User, article *models.Article, value int) error {
	return f.db.Create(&models.Reaction{
		UserID:    user.ID,
		ArticleID: article.ID,
		Value:     value,
	}).Error
}

// CreateRating persists a rating score from the user on the article.
func (f *Factory) CreateRating(user *models.User, article *models.Article, score int) error {
	return f.db.Create(&models.Rating{
		UserID:    user.ID,
		ArticleID: article.ID,
		Score:     score,
	}).Error
}
