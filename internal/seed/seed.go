package seed

import (
	"fmt"
	"log"

	"inkpulse/internal/models"

	"gorm.io/gorm"
)

// Options controls how much data the seeder creates.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with demo users, posts, comments and likes.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			log.Printf("skipping user: %v", err)
			continue
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return fmt.Errorf("no users created")
	}
	log.Printf("created %d users", len(users))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[f.r.Intn(len(users))]
		post, err := f.CreatePost(author)
		if err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("created %d posts", len(posts))

	comments := 0
	likes := 0
	for _, post := range posts {
		if post.Status != models.PostStatusPublished {
			continue
		}
		for i := 0; i < f.r.Intn(6); i++ {
			commenter := users[f.r.Intn(len(users))]
			if _, err := f.CreateComment(commenter, post); err != nil {
				return fmt.Errorf("failed to create comment: %w", err)
			}
			comments++
		}
		for i := 0; i < f.r.Intn(10); i++ {
			liker := users[f.r.Intn(len(users))]
			// duplicate (user, post) pairs hit the unique index
			if err := f.CreateLike(liker, post); err == nil {
				likes++
			}
		}
	}
	log.Printf("created %d comments and %d likes", comments, likes)

	log.Println("Seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, posts, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
