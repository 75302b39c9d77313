package services

import (
	"log"

	"garage-club-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GarageService struct {
	DB *gorm.DB
}

func NewGarageService(db *gorm.DB) *GarageService {
	return &GarageService{DB: db}
}

type CreateGarageInput struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Theme       models.GarageTheme `json:"theme"`
	IsPublic    *bool              `json:"isPublic"`
	CarIDs      []string           `json:"carIds"`
}

// CreateGarage creates a garage with entries in the order the cars were
// picked. Garage and entries land in one transaction.
func (s *GarageService) CreateGarage(userID string, in CreateGarageInput) (*models.Garage, error) {
	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}

	garage := &models.Garage{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Theme:       in.Theme,
		IsPublic:    isPublic,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(garage).Error; err != nil {
			return err
		}
		for i, carID := range in.CarIDs {
			entry := models.GarageEntry{
				ID:       uuid.NewString(),
				GarageID: garage.ID,
				CarID:    carID,
				Position: i,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.DB.Preload("Entries", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("Entries.Car").First(garage, "id = ?", garage.ID).Error; err != nil {
		return nil, err
	}

	return garage, nil
}

// --- Handlers ---

// ListGarages returns the caller's garages with cars preloaded in position
// order, newest garage first.
func (s *GarageService) ListGarages(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var garages []models.Garage
	if err := s.DB.Where("user_id = ?", userID).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Entries.Car").
		Order("created_at DESC").
		Find(&garages).Error; err != nil {
		log.Printf("DB Error listing garages for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch garages"})
	}

	return c.JSON(garages)
}

func (s *GarageService) HandleCreateGarage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var in CreateGarageInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	garage, err := s.CreateGarage(userID, in)
	if err != nil {
		log.Printf("Failed to create garage for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create garage"})
	}

	return c.Status(fiber.StatusCreated).JSON(garage)
}
