package services

import (
	"errors"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"garage-club-system/models"
	"garage-club-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CarService struct {
	DB *gorm.DB
}

func NewCarService(db *gorm.DB) *CarService {
	return &CarService{DB: db}
}

// ListCars is the public catalog query. Filters are all optional and
// combine with AND; search is a case-insensitive substring over
// make/model/trim. Ordered make, model, then year descending.
func (s *CarService) ListCars(c *fiber.Ctx) error {
	db := s.DB.Model(&models.Car{})

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		db = db.Where(
			"LOWER(make) LIKE ? OR LOWER(model) LIKE ? OR LOWER(trim) LIKE ?",
			like, like, like,
		)
	}
	if make := c.Query("make"); make != "" {
		db = db.Where("make = ?", make)
	}
	if yearStart := c.Query("yearStart"); yearStart != "" {
		if y, err := strconv.Atoi(yearStart); err == nil {
			db = db.Where("year >= ?", y)
		}
	}
	if yearEnd := c.Query("yearEnd"); yearEnd != "" {
		if y, err := strconv.Atoi(yearEnd); err == nil {
			db = db.Where("year <= ?", y)
		}
	}
	if maxPrice := c.Query("maxPrice"); maxPrice != "" {
		if p, err := strconv.ParseInt(maxPrice, 10, 64); err == nil {
			db = db.Where("current_value <= ?", p)
		}
	}
	if rarity := c.Query("rarity"); rarity != "" {
		db = db.Where("rarity = ?", models.Rarity(rarity))
	}

	var cars []models.Car
	if err := db.Order("make ASC, model ASC, year DESC").Find(&cars).Error; err != nil {
		log.Printf("DB Error listing cars: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch cars"})
	}

	return c.JSON(cars)
}

// GetCarByID returns a single catalog entry.
func (s *CarService) GetCarByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var car models.Car
	if err := s.DB.First(&car, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Car not found"})
		}
		log.Printf("DB Error fetching car %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	return c.JSON(car)
}

// CreateCar adds a catalog entry (admin only).
func (s *CarService) CreateCar(c *fiber.Ctx) error {
	var req struct {
		Make             string  `json:"make"`
		Model            string  `json:"model"`
		Year             int     `json:"year"`
		Trim             string  `json:"trim"`
		VIN              string  `json:"vin"`
		EngineType       string  `json:"engineType"`
		Horsepower       int     `json:"horsepower"`
		Torque           int     `json:"torque"`
		Transmission     string  `json:"transmission"`
		Drivetrain       string  `json:"drivetrain"`
		Weight           int     `json:"weight"`
		ZeroToSixty      float64 `json:"zeroToSixty"`
		TopSpeed         int     `json:"topSpeed"`
		MSRP             int64   `json:"msrp"`
		CurrentValue     int64   `json:"currentValue"`
		ImageURL         string  `json:"imageUrl"`
		MovieAppearances string  `json:"movieAppearances"`
		FamousOwners     string  `json:"famousOwners"`
		ProductionCount  int     `json:"productionCount"`
		Rarity           string  `json:"rarity"`

		AuctionHistory datatypes.JSON `json:"auctionHistory"`
		Provenance     datatypes.JSON `json:"provenance"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Make == "" || req.Model == "" || req.Year == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "make, model and year are required"})
	}
	switch models.Rarity(req.Rarity) {
	case "", models.RarityCommon, models.RarityUncommon, models.RarityRare, models.RarityLegendary:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid rarity (common/uncommon/rare/legendary)"})
	}

	car := &models.Car{
		ID:               uuid.NewString(),
		Make:             req.Make,
		Model:            req.Model,
		Year:             req.Year,
		Trim:             req.Trim,
		VIN:              req.VIN,
		EngineType:       req.EngineType,
		Horsepower:       req.Horsepower,
		Torque:           req.Torque,
		Transmission:     req.Transmission,
		Drivetrain:       req.Drivetrain,
		Weight:           req.Weight,
		ZeroToSixty:      req.ZeroToSixty,
		TopSpeed:         req.TopSpeed,
		MSRP:             req.MSRP,
		CurrentValue:     req.CurrentValue,
		ImageURL:         req.ImageURL,
		MovieAppearances: req.MovieAppearances,
		FamousOwners:     req.FamousOwners,
		ProductionCount:  req.ProductionCount,
		Rarity:           models.Rarity(req.Rarity),
		AuctionHistory:   req.AuctionHistory,
		Provenance:       req.Provenance,
	}

	if err := s.DB.Create(car).Error; err != nil {
		log.Printf("DB Error creating car: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create car"})
	}

	return c.Status(fiber.StatusCreated).JSON(car)
}

// UploadCarImage stores a car photo in R2 and records the public URL.
func (s *CarService) UploadCarImage(c *fiber.Ctx) error {
	id := c.Params("id")

	var car models.Car
	if err := s.DB.First(&car, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Car not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	imageFile, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image is required"})
	}
	if imageFile.Size > 10*1024*1024 { // 10MB
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image too large (max 10MB)"})
	}

	ext := filepath.Ext(imageFile.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := "cars/" + uuid.NewString() + ext

	var imageURL string
	if utils.R2Enabled() {
		imageURL, err = utils.UploadFileToR2(imageFile, key)
		if err != nil {
			log.Printf("R2 upload failed for car %s: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload image"})
		}
	} else {
		// No R2 configured: keep the file under ./uploads, served statically
		if err := utils.SaveFile(imageFile, utils.GetUploadPath(key)); err != nil {
			log.Printf("Local save failed for car %s: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload image"})
		}
		imageURL = "/uploads/" + key
	}

	if err := s.DB.Model(&car).Update("image_url", imageURL).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save image URL"})
	}

	return c.JSON(fiber.Map{"id": car.ID, "imageUrl": imageURL})
}
