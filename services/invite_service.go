package services

import (
	"errors"
	"log"
	"time"

	"garage-club-system/models"
	"garage-club-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const inviteValidity = 7 * 24 * time.Hour

type InviteService struct {
	DB      *gorm.DB
	Unlocks *UnlockService
}

func NewInviteService(db *gorm.DB, unlocks *UnlockService) *InviteService {
	return &InviteService{DB: db, Unlocks: unlocks}
}

// CreateInvite issues a fresh single-use code expiring in 7 days.
func (s *InviteService) CreateInvite(senderID string) (*models.Invite, error) {
	invite := &models.Invite{
		ID:        uuid.NewString(),
		SenderID:  senderID,
		Status:    models.InviteStatusPending,
		ExpiresAt: time.Now().Add(inviteValidity),
	}

	// The code column is unique; on the (vanishingly rare) collision,
	// draw again instead of failing the request.
	for attempt := 0; attempt < 5; attempt++ {
		invite.Code = utils.GenerateInviteCode()

		var taken int64
		if err := s.DB.Model(&models.Invite{}).Where("code = ?", invite.Code).Count(&taken).Error; err != nil {
			return nil, err
		}
		if taken > 0 {
			continue
		}

		if err := s.DB.Create(invite).Error; err != nil {
			return nil, err
		}
		return invite, nil
	}
	return nil, errors.New("could not generate a unique invite code")
}

// AcceptInvite validates and redeems a code. Checks run in a fixed order:
// existence, prior use, expiry, self-invite. The transition to accepted
// records receiver and timestamp in one update — no partial states.
func (s *InviteService) AcceptInvite(code, accepterID string) (*models.Invite, error) {
	var invite models.Invite
	if err := s.DB.First(&invite, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}

	if invite.Status != models.InviteStatusPending {
		return nil, ErrInviteAlreadyUsed
	}
	if time.Now().After(invite.ExpiresAt) {
		return nil, ErrInviteExpired
	}
	if invite.SenderID == accepterID {
		return nil, ErrSelfInvite
	}

	now := time.Now()
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Guard the status in the WHERE so two racing accepts can't both win.
		res := tx.Model(&models.Invite{}).
			Where("id = ? AND status = ?", invite.ID, models.InviteStatusPending).
			Updates(map[string]interface{}{
				"status":      models.InviteStatusAccepted,
				"receiver_id": accepterID,
				"used_at":     now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInviteAlreadyUsed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invite.Status = models.InviteStatusAccepted
	invite.ReceiverID = &accepterID
	invite.UsedAt = &now

	if err := s.Unlocks.Evaluate(invite.SenderID, models.MetricInvitesAccepted); err != nil {
		log.Printf("⚠️ Unlock evaluation failed for sender %s: %v", invite.SenderID, err)
	}

	return &invite, nil
}

// --- Handlers ---

// ListInvites returns the caller's sent invites, newest first.
func (s *InviteService) ListInvites(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var invites []models.Invite
	if err := s.DB.Where("sender_id = ?", userID).
		Preload("Receiver").
		Order("created_at DESC").
		Find(&invites).Error; err != nil {
		log.Printf("DB Error listing invites for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch invites"})
	}

	return c.JSON(invites)
}

func (s *InviteService) HandleCreateInvite(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	invite, err := s.CreateInvite(userID)
	if err != nil {
		log.Printf("Failed to create invite for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create invite"})
	}

	return c.Status(fiber.StatusCreated).JSON(invite)
}

func (s *InviteService) HandleAcceptInvite(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req struct {
		Code string `json:"code"`
	}
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "code is required"})
	}

	invite, err := s.AcceptInvite(req.Code, userID)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{
			"success":  true,
			"senderId": invite.SenderID,
		})
	case errors.Is(err, ErrInviteNotFound),
		errors.Is(err, ErrInviteAlreadyUsed),
		errors.Is(err, ErrInviteExpired),
		errors.Is(err, ErrSelfInvite):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("Failed to accept invite for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to accept invite"})
	}
}
