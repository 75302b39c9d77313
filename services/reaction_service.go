package services

import (
	"errors"
	"log"

	"garage-club-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReactionService struct {
	DB      *gorm.DB
	Unlocks *UnlockService
}

func NewReactionService(db *gorm.DB, unlocks *UnlockService) *ReactionService {
	return &ReactionService{DB: db, Unlocks: unlocks}
}

// React records a reaction. A second reaction from the same user on the
// same submission overwrites the type (last-write-wins, no history) and
// does not bump the reactions-given counter; only genuinely new reactions
// trigger a milestone pass.
func (s *ReactionService) React(userID, submissionID string, reactionType models.ReactionType) (*models.Reaction, bool, error) {
	if !models.ValidReactionType(reactionType) {
		return nil, false, ErrInvalidReaction
	}

	var submissionCount int64
	if err := s.DB.Model(&models.GarageSubmission{}).
		Where("id = ?", submissionID).
		Count(&submissionCount).Error; err != nil {
		return nil, false, err
	}
	if submissionCount == 0 {
		return nil, false, ErrSubmissionNotFound
	}

	var existing models.Reaction
	err := s.DB.Where("user_id = ? AND submission_id = ?", userID, submissionID).First(&existing).Error
	if err == nil {
		existing.Type = reactionType
		if err := s.DB.Save(&existing).Error; err != nil {
			return nil, false, err
		}
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	reaction := &models.Reaction{
		ID:           uuid.NewString(),
		UserID:       userID,
		SubmissionID: submissionID,
		Type:         reactionType,
	}
	if err := s.DB.Create(reaction).Error; err != nil {
		return nil, false, err
	}

	if err := s.Unlocks.Evaluate(userID, models.MetricReactionsGiven); err != nil {
		log.Printf("⚠️ Unlock evaluation failed for %s: %v", userID, err)
	}

	return reaction, true, nil
}

// Unreact removes the user's reaction from a submission.
func (s *ReactionService) Unreact(userID, submissionID string) error {
	res := s.DB.Where("user_id = ? AND submission_id = ?", userID, submissionID).
		Delete(&models.Reaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrReactionNotFound
	}
	return nil
}

// --- Handlers ---

func (s *ReactionService) HandleReact(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req struct {
		SubmissionID string `json:"submissionId"`
		Type         string `json:"type"`
	}
	if err := c.BodyParser(&req); err != nil || req.SubmissionID == "" || req.Type == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "submissionId and type are required"})
	}

	reaction, _, err := s.React(userID, req.SubmissionID, models.ReactionType(req.Type))
	switch {
	case err == nil:
		return c.JSON(reaction)
	case errors.Is(err, ErrSubmissionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrInvalidReaction):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("Failed to create reaction for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create reaction"})
	}
}

func (s *ReactionService) HandleUnreact(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	submissionID := c.Query("submissionId")
	if submissionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Submission ID required"})
	}

	err := s.Unreact(userID, submissionID)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"success": true})
	case errors.Is(err, ErrReactionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("Failed to delete reaction for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete reaction"})
	}
}
