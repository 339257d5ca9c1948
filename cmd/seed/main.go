package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/task-manager-pro/config"
	"github.com/oksasatya/task-manager-pro/internal/domain/entity"
	"github.com/oksasatya/task-manager-pro/internal/domain/repository"
	"github.com/oksasatya/task-manager-pro/internal/infrastructure/mongodb"
	"github.com/oksasatya/task-manager-pro/pkg/helpers"
)

// Seeds demo accounts and tasks for local development.
// Safe to run repeatedly: existing accounts are left alone.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoTimeout)
	if err != nil {
		log.Fatalf("mongodb connect: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.MongoDB)

	users := mongodb.NewUserRepository(db)
	tasks := mongodb.NewTaskRepository(db)

	alice := seedUser(ctx, users, "Alice Demo", "alice@example.com")
	bob := seedUser(ctx, users, "Bob Demo", "bob@example.com")

	yesterday := time.Now().AddDate(0, 0, -1)
	nextWeek := time.Now().AddDate(0, 0, 7)

	seedTasks := []*entity.Task{
		{
			Title:       "Write the quarterly report",
			Description: "Summarize progress for Q3",
			Status:      entity.StatusInProgress,
			Priority:    entity.PriorityHigh,
			Category:    "work",
			DueDate:     &yesterday,
			Owner:       alice.ID,
		},
		{
			Title:      "Review the new landing page",
			Status:     entity.StatusPending,
			Priority:   entity.PriorityMedium,
			Category:   "work",
			Tags:       []string{"design", "review"},
			DueDate:    &nextWeek,
			AssignedTo: bob.Email,
			Owner:      alice.ID,
		},
		{
			Title:    "Plan the team offsite",
			Status:   entity.StatusPending,
			Priority: entity.PriorityLow,
			Category: "personal",
			Owner:    bob.ID,
		},
	}
	for _, t := range seedTasks {
		if err := tasks.Create(ctx, t); err != nil {
			log.Fatalf("seed task %q: %v", t.Title, err)
		}
	}

	log.Printf("seeded %d users and %d tasks (password for both: password123)", 2, len(seedTasks))
}

func seedUser(ctx context.Context, users repository.UserRepository, name, email string) *entity.User {
	if existing, err := users.GetByEmail(ctx, email); err == nil {
		log.Printf("user %s already exists, skipping", email)
		return existing
	}
	hash, err := helpers.HashPassword("password123")
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	u := &entity.User{Name: name, Email: email, Password: hash}
	if err := users.Create(ctx, u); err != nil {
		log.Fatalf("seed user %s: %v", email, err)
	}
	return u
}
