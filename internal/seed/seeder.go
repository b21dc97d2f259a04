package seed

import (
	"log"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded data. Order respects foreign keys.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{
		&models.Rating{},
		&models.Reaction{},
		&models.Comment{},
		&models.Article{},
		&models.Profile{},
		&models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedCommunity creates users with profiles and articles with comments,
// reactions, and ratings spread across them.
func (s *Seeder) SeedCommunity(numUsers, numArticles int) error {
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}
	log.Printf("seeded %d users", len(users))

	articles := make([]*models.Article, 0, numArticles)
	for i := 0; i < numArticles; i++ {
		author := users[gofakeit.Number(0, len(users)-1)]
		article, err := s.factory.CreateArticle(author)
		if err != nil {
			return err
		}
		articles = append(articles, article)
	}
	log.Printf("seeded %d articles", len(articles))

	for _, article := range articles {
		for _, user := range users {
			if user.ID == article.AuthorID {
				continue
			}
			roll := gofakeit.Number(0, 9)
			switch {
			case roll < 3:
				value := models.ReactionLike
				if gofakeit.Bool() {
					value = models.ReactionDislike
				}
				if err := s.factory.CreateReaction(user, article, value); err != nil {
					return err
				}
			case roll < 5:
				if err := s.factory.CreateRating(user, article, gofakeit.Number(1, 5)); err != nil {
					return err
				}
			case roll == 5:
				comment, err := s.factory.CreateComment(user, article, nil)
				if err != nil {
					return err
				}
				if gofakeit.Bool() {
					replier := users[gofakeit.Number(0, len(users)-1)]
					if _, err := s.factory.CreateComment(replier, article, &comment.ID); err != nil {
						return err
					}
				}
			}
		}
	}
	log.Printf("seeded engagement across %d articles", len(articles))
	return nil
}
