package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"garage-club-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxSubmissionCars caps a challenge line-up.
const MaxSubmissionCars = 5

type SubmissionService struct {
	DB          *gorm.DB
	Progression *ProgressionService
	Unlocks     *UnlockService
}

func NewSubmissionService(db *gorm.DB, progression *ProgressionService, unlocks *UnlockService) *SubmissionService {
	return &SubmissionService{DB: db, Progression: progression, Unlocks: unlocks}
}

type CreateSubmissionInput struct {
	ChallengeID string   `json:"challengeId"`
	CarIDs      []string `json:"carIds"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
}

// CreateSubmission validates a car line-up against the challenge's
// constraints, persists it, records participation, awards points and
// re-evaluates the challenge-completion milestones.
func (s *SubmissionService) CreateSubmission(userID string, in CreateSubmissionInput) (*models.GarageSubmission, error) {
	if len(in.CarIDs) == 0 {
		return nil, ErrEmptyLineup
	}
	if len(in.CarIDs) > MaxSubmissionCars {
		return nil, ErrTooManyCars
	}

	var challenge models.Challenge
	if err := s.DB.First(&challenge, "id = ?", in.ChallengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}

	var cars []models.Car
	if err := s.DB.Where("id IN ?", in.CarIDs).Find(&cars).Error; err != nil {
		return nil, err
	}
	if len(cars) != len(in.CarIDs) {
		return nil, ErrCarNotFound
	}

	// Era window check, when the challenge defines one
	if challenge.EraStart != nil || challenge.EraEnd != nil {
		for _, car := range cars {
			if challenge.EraStart != nil && car.Year < *challenge.EraStart {
				return nil, ErrOutsideEra
			}
			if challenge.EraEnd != nil && car.Year > *challenge.EraEnd {
				return nil, ErrOutsideEra
			}
		}
	}

	// Total value: current value, else MSRP, else zero per car.
	// Budget acceptance is inclusive — a total equal to the limit passes.
	var totalValue int64
	for _, car := range cars {
		totalValue += car.ResolvedValue()
	}
	if challenge.BudgetLimit != nil && totalValue > *challenge.BudgetLimit {
		return nil, ErrOverBudget
	}

	carIDsJSON, err := json.Marshal(in.CarIDs)
	if err != nil {
		return nil, err
	}

	submission := &models.GarageSubmission{
		ID:          uuid.NewString(),
		UserID:      userID,
		ChallengeID: challenge.ID,
		Title:       in.Title,
		Description: in.Description,
		TotalValue:  totalValue,
		CarIDs:      carIDsJSON,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(submission).Error; err != nil {
			return err
		}

		// Participation is keyed on (user, challenge): resubmitting refreshes
		// the completion timestamp instead of adding a second row.
		now := time.Now()
		participation := models.ChallengeParticipation{
			ID:          uuid.NewString(),
			UserID:      userID,
			ChallengeID: challenge.ID,
			CompletedAt: &now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "challenge_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"completed_at", "updated_at"}),
		}).Create(&participation).Error; err != nil {
			return err
		}

		return s.Progression.AwardPointsTx(tx, userID, challenge.Points,
			fmt.Sprintf("challenge_%s_completed", challenge.ID))
	})
	if err != nil {
		return nil, err
	}

	if err := s.Unlocks.Evaluate(userID, models.MetricChallengesCompleted); err != nil {
		// The submission is committed; a failed milestone pass will be
		// retried on the user's next qualifying event.
		log.Printf("⚠️ Unlock evaluation failed for %s: %v", userID, err)
	}

	return submission, nil
}

// --- Handlers ---

// ListSubmissions returns submissions, optionally narrowed to a challenge
// or a user, newest first.
func (s *SubmissionService) ListSubmissions(c *fiber.Ctx) error {
	db := s.DB.Model(&models.GarageSubmission{})

	if challengeID := c.Query("challengeId"); challengeID != "" {
		db = db.Where("challenge_id = ?", challengeID)
	}
	if userID := c.Query("userId"); userID != "" {
		db = db.Where("user_id = ?", userID)
	}

	var submissions []models.GarageSubmission
	if err := db.Preload("User").
		Preload("Challenge").
		Preload("Reactions").
		Order("created_at DESC").
		Find(&submissions).Error; err != nil {
		log.Printf("DB Error listing submissions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch submissions"})
	}

	return c.JSON(submissions)
}

// HandleCreateSubmission parses the request and maps workflow errors to
// HTTP statuses.
func (s *SubmissionService) HandleCreateSubmission(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var in CreateSubmissionInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	submission, err := s.CreateSubmission(userID, in)
	switch {
	case err == nil:
		return c.Status(fiber.StatusCreated).JSON(submission)
	case errors.Is(err, ErrChallengeNotFound), errors.Is(err, ErrCarNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrEmptyLineup), errors.Is(err, ErrTooManyCars),
		errors.Is(err, ErrOverBudget), errors.Is(err, ErrOutsideEra):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("Failed to create submission for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create submission"})
	}
}
