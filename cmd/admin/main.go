package main

import (
	"fmt"
	"log"
	"os"

	"gramalert/backend/internal/config"
	"gramalert/backend/internal/grievance"
	"gramalert/backend/internal/models"
	"gramalert/backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopNotifier drops snapshots. The CLI talks straight to the database;
// live boards catch up on their next fetch.
type noopNotifier struct{}

func (noopNotifier) PublishGrievance(models.GrievanceSnapshot) error { return nil }

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: promote <username> | resolve <grievance-id> | sweep")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "promote":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin promote <username>")
			os.Exit(1)
		}
		username := os.Args[2]
		if err := promoteUser(storageSvc, username); err != nil {
			log.Fatalf("Error promoting user: %v", err)
		}
		fmt.Printf("User %s is now an ADMIN.\n", username)

	case "resolve":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin resolve <grievance-id>")
			os.Exit(1)
		}
		svc := grievance.NewService(storageSvc, noopNotifier{})
		if _, err := svc.TransitionStatus(os.Args[2], config.ResolvedStatus); err != nil {
			log.Fatalf("Error resolving grievance: %v", err)
		}
		fmt.Printf("Grievance %s resolved.\n", os.Args[2])

	case "sweep":
		sweeper := grievance.NewSweeper(storageSvc, noopNotifier{})
		sweeper.RunOnce()
		fmt.Println("Escalation pass complete.")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func promoteUser(s *storage.Service, username string) error {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %q not found", username)
	}

	user.Role = "ADMIN"
	return s.SaveUser(user)
}
