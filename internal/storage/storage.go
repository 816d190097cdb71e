package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"gramalert/backend/internal/config"
	"gramalert/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// GrievanceChannel is the Redis Pub/Sub channel carrying grievance snapshots
// from any writer (API process or sweeper) to every running feed hub.
const GrievanceChannel = "grievances:feed"

type Storage interface {
	CreateGrievance(g *models.Grievance) error
	GetGrievanceByID(id string) (*models.Grievance, error)
	GetAllGrievances() ([]models.Grievance, error)
	GetGrievancesByOwner(ownerID string) ([]models.Grievance, error)
	UpdateGrievanceFields(id string, fields map[string]interface{}) error
	MarkGrievanceOverdue(id string) (bool, error)

	CreateUser(user *models.User) error
	SaveUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUsersByIDs(ids []string) (map[string]models.User, error)

	PublishGrievance(snapshot models.GrievanceSnapshot) error
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// CreateGrievance inserts a new grievance row in PostgreSQL.
func (s *Service) CreateGrievance(g *models.Grievance) error {
	if err := s.DB.Create(g).Error; err != nil {
		log.Printf("ERROR: Failed to create grievance %q: %v", g.Title, err)
		return err
	}
	return nil
}

// GetGrievanceByID returns the grievance with the given ID, or (nil, nil)
// when no such row exists.
func (s *Service) GetGrievanceByID(id string) (*models.Grievance, error) {
	var g models.Grievance
	err := s.DB.Where("id = ?", id).First(&g).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to get grievance %s: %v", id, err)
		return nil, err
	}
	return &g, nil
}

// GetAllGrievances returns every grievance in insertion order.
func (s *Service) GetAllGrievances() ([]models.Grievance, error) {
	var grievances []models.Grievance
	if err := s.DB.Order("created_at asc").Find(&grievances).Error; err != nil {
		log.Printf("ERROR: Failed to list grievances: %v", err)
		return nil, err
	}
	return grievances, nil
}

// GetGrievancesByOwner returns the owner's grievances, most recent first.
// The ordering is a user-facing contract for the "my requests" view.
func (s *Service) GetGrievancesByOwner(ownerID string) ([]models.Grievance, error) {
	var grievances []models.Grievance
	err := s.DB.Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&grievances).Error
	if err != nil {
		log.Printf("ERROR: Failed to list grievances for owner %s: %v", ownerID, err)
		return nil, err
	}
	return grievances, nil
}

// UpdateGrievanceFields applies a targeted column update so concurrent
// writers (API handlers, the sweeper) never clobber each other's columns.
func (s *Service) UpdateGrievanceFields(id string, fields map[string]interface{}) error {
	return s.DB.Model(&models.Grievance{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// MarkGrievanceOverdue escalates a grievance with a compare-and-swap on the
// overdue flag. It reports false when another pass already escalated the row,
// which keeps the sweep idempotent across runs and across processes.
func (s *Service) MarkGrievanceOverdue(id string) (bool, error) {
	result := s.DB.Model(&models.Grievance{}).
		Where("id = ? AND is_overdue = ?", id, false).
		Updates(map[string]interface{}{
			"is_overdue":       true,
			"priority":         config.EscalatedPriority,
			"escalation_level": config.EscalatedLevel,
		})

	if result.Error != nil {
		log.Printf("ERROR: Failed to escalate grievance %s: %v", id, result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CreateUser inserts a new user row in PostgreSQL.
func (s *Service) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

// SaveUser persists the user in PostgreSQL.
func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// GetUserByID returns the user with the given ID, or (nil, nil) when missing.
func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("id = ?", id).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername returns the user with the given username, or (nil, nil)
// when missing.
func (s *Service) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("username = ?", username).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUsersByIDs resolves a batch of user IDs in one query, for snapshot
// building over whole listings.
func (s *Service) GetUsersByIDs(ids []string) (map[string]models.User, error) {
	userMap := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return userMap, nil
	}

	var users []models.User
	if err := s.DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
		log.Printf("ERROR: Failed to resolve users %v: %v", ids, err)
		return nil, err
	}

	for _, u := range users {
		userMap[u.ID] = u
	}
	return userMap, nil
}

// PublishGrievance publishes a post-mutation snapshot on Redis Pub/Sub.
func (s *Service) PublishGrievance(snapshot models.GrievanceSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	if err := s.Redis.Publish(s.Ctx, GrievanceChannel, string(payload)).Err(); err != nil {
		return err
	}

	return nil
}

// SubscribeGrievances subscribes to the grievance snapshot channel. The feed
// hub consumes this to fan snapshots out to live clients.
func (s *Service) SubscribeGrievances() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, GrievanceChannel)
}
