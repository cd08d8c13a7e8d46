package seed

import (
	"errors"
	"fmt"
	"log"

	"github.com/momtheprogram/api-final-writers-blog/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// builtInGroups are the curated communities every environment gets.
var builtInGroups = []models.Group{
	{Title: "Travel notes", Slug: "travel", Description: "Road stories and trip reports"},
	{Title: "Kitchen diaries", Slug: "cooking", Description: "Recipes and everything around them"},
	{Title: "Tech talk", Slug: "tech", Description: "Hardware, software and the rest"},
	{Title: "Book club", Slug: "books", Description: "What we read and why"},
	{Title: "Photo walks", Slug: "photo", Description: "Pictures and the places behind them"},
}

// Seeder populates the database with demo content.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// Groups upserts the built-in group catalog. Safe to run repeatedly.
func Groups(db *gorm.DB) error {
	for _, g := range builtInGroups {
		var existing models.Group
		err := db.Where("slug = ?", g.Slug).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if createErr := db.Create(&g).Error; createErr != nil {
				return fmt.Errorf("create group %q: %w", g.Slug, createErr)
			}
		case err != nil:
			return fmt.Errorf("lookup group %q: %w", g.Slug, err)
		}
	}
	return nil
}

// ClearAll removes all seeded content. Order respects foreign keys.
func (s *Seeder) ClearAll() error {
	for _, model := range []interface{}{
		&models.Follow{},
		&models.Comment{},
		&models.Post{},
		&models.Group{},
		&models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// Run populates the database: users, the built-in groups, posts spread
// across groups, comments and a follow mesh.
func (s *Seeder) Run(opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 20
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 100
	}

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	if err := Groups(s.db); err != nil {
		return err
	}
	var groups []*models.Group
	if err := s.db.Find(&groups).Error; err != nil {
		return fmt.Errorf("load groups: %w", err)
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser("password123")
		if err != nil {
			return err
		}
		users = append(users, user)
	}
	log.Printf("seeded %d users", len(users))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[s.factory.rng.Intn(len(users))]
		var group *models.Group
		// Roughly two thirds of posts land in a group.
		if s.factory.rng.Intn(3) != 0 && len(groups) > 0 {
			group = groups[s.factory.rng.Intn(len(groups))]
		}
		post, err := s.factory.CreatePost(author, group, 90)
		if err != nil {
			return err
		}
		posts = append(posts, post)
	}
	log.Printf("seeded %d posts across %d groups", len(posts), len(groups))

	comments := 0
	for _, post := range posts {
		for i := s.factory.rng.Intn(4); i > 0; i-- {
			author := users[s.factory.rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(author, post); err != nil {
				return err
			}
			comments++
		}
	}
	log.Printf("seeded %d comments", comments)

	for _, user := range users {
		for i := s.factory.rng.Intn(5); i > 0; i-- {
			target := users[s.factory.rng.Intn(len(users))]
			if err := s.factory.CreateFollow(user, target); err != nil {
				return err
			}
		}
	}
	log.Printf("seeded follow mesh")

	return nil
}
