package services

import (
	"errors"
	"log"
	"time"

	"garage-club-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type ChallengeService struct {
	DB *gorm.DB
}

func NewChallengeService(db *gorm.DB) *ChallengeService {
	return &ChallengeService{DB: db}
}

// ListChallenges is the public challenge feed. active=true narrows to
// challenges whose window contains now; theme and type filter further.
// Ordered by start time descending, with per-challenge submission counts.
func (s *ChallengeService) ListChallenges(c *fiber.Ctx) error {
	db := s.DB.Model(&models.Challenge{})

	if c.Query("active") == "true" {
		now := time.Now()
		db = db.Where("is_active = ? AND starts_at <= ? AND ends_at >= ?", true, now, now)
	}
	if theme := c.Query("theme"); theme != "" {
		db = db.Where("theme = ?", models.ChallengeTheme(theme))
	}
	if ctype := c.Query("type"); ctype != "" {
		db = db.Where("type = ?", models.ChallengeType(ctype))
	}

	var challenges []models.Challenge
	if err := db.Order("starts_at DESC").Find(&challenges).Error; err != nil {
		log.Printf("DB Error listing challenges: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch challenges"})
	}

	for i := range challenges {
		s.DB.Model(&models.GarageSubmission{}).
			Where("challenge_id = ?", challenges[i].ID).
			Count(&challenges[i].SubmissionCount)
	}

	return c.JSON(fiber.Map{
		"total":      len(challenges),
		"challenges": challenges,
	})
}

// GetChallengeByID returns a challenge with its submissions (user summaries
// and reactions included) and participation counts.
func (s *ChallengeService) GetChallengeByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var challenge models.Challenge
	if err := s.DB.First(&challenge, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Challenge not found"})
		}
		log.Printf("DB Error fetching challenge %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var submissions []models.GarageSubmission
	if err := s.DB.Where("challenge_id = ?", id).
		Preload("User").
		Preload("Reactions").
		Order("created_at DESC").
		Find(&submissions).Error; err != nil {
		log.Printf("DB Error fetching submissions for challenge %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var participationCount int64
	s.DB.Model(&models.ChallengeParticipation{}).
		Where("challenge_id = ?", id).
		Count(&participationCount)

	challenge.SubmissionCount = int64(len(submissions))

	return c.JSON(fiber.Map{
		"challenge":      challenge,
		"submissions":    submissions,
		"participations": participationCount,
	})
}

// CreateChallenge adds a new challenge (admin only). Challenges are never
// edited after creation; the scheduler owns the IsActive flag.
func (s *ChallengeService) CreateChallenge(c *fiber.Ctx) error {
	var req struct {
		Title          string  `json:"title"`
		Description    string  `json:"description"`
		Theme          string  `json:"theme"`
		Type           string  `json:"type"`
		BudgetLimit    *int64  `json:"budgetLimit"`
		EraStart       *int    `json:"eraStart"`
		EraEnd         *int    `json:"eraEnd"`
		MovieReference *string `json:"movieReference"`
		Difficulty     string  `json:"difficulty"`
		Points         int64   `json:"points"`
		ImageURL       string  `json:"imageUrl"`
		StartsAt       string  `json:"startsAt"`
		EndsAt         string  `json:"endsAt"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Title == "" || req.Theme == "" || req.Type == "" || req.StartsAt == "" || req.EndsAt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title, theme, type, startsAt and endsAt are required"})
	}

	switch models.ChallengeType(req.Type) {
	case models.ChallengeTypeBudget, models.ChallengeTypeEra, models.ChallengeTypeMovie,
		models.ChallengeTypeWildcard, models.ChallengeTypeOddball, models.ChallengeTypeCollector:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid type (budget/era/movie/wildcard/oddball/collector)"})
	}

	difficulty := models.Difficulty(req.Difficulty)
	switch difficulty {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard, models.DifficultyExpert:
	case "":
		difficulty = models.DifficultyMedium
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid difficulty (easy/medium/hard/expert)"})
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "startsAt must be RFC3339"})
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "endsAt must be RFC3339"})
	}
	if !endsAt.After(startsAt) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "endsAt must be after startsAt"})
	}

	if req.EraStart != nil && req.EraEnd != nil && *req.EraEnd < *req.EraStart {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "eraEnd cannot precede eraStart"})
	}

	points := req.Points
	if points == 0 {
		points = 100
	}

	now := time.Now()
	challenge := &models.Challenge{
		ID:             uuid.NewString(),
		Title:          req.Title,
		Slug:           s.uniqueSlug(req.Title),
		Description:    req.Description,
		Theme:          models.ChallengeTheme(req.Theme),
		Type:           models.ChallengeType(req.Type),
		BudgetLimit:    req.BudgetLimit,
		EraStart:       req.EraStart,
		EraEnd:         req.EraEnd,
		MovieReference: req.MovieReference,
		Difficulty:     difficulty,
		Points:         points,
		ImageURL:       req.ImageURL,
		IsActive:       !startsAt.After(now) && !endsAt.Before(now),
		StartsAt:       startsAt,
		EndsAt:         endsAt,
	}

	if err := s.DB.Create(challenge).Error; err != nil {
		log.Printf("DB Error creating challenge: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create challenge"})
	}

	return c.Status(fiber.StatusCreated).JSON(challenge)
}

// uniqueSlug slugifies the title, suffixing a short token on collision.
func (s *ChallengeService) uniqueSlug(title string) string {
	base := slug.Make(title)
	var count int64
	s.DB.Model(&models.Challenge{}).Where("slug = ?", base).Count(&count)
	if count == 0 {
		return base
	}
	return base + "-" + uuid.NewString()[:8]
}
