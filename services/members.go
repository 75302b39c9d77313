// services/members.go
package services

import (
	"strconv"
	"strings"

	"garage-club-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type MemberService struct {
	DB *gorm.DB
}

func NewMemberService(db *gorm.DB) *MemberService {
	return &MemberService{DB: db}
}

// SearchMembers searches the local ClubMember snapshot table. Used by the
// invite screen and garage sharing to look up other members.
func (s *MemberService) SearchMembers(c *fiber.Ctx) error {
	query := c.Query("q", "")
	limitStr := c.Query("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	db := s.DB.Model(&models.ClubMember{}).Where("is_banned = ?", false).Limit(limit)

	if query != "" {
		searchTerm := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
		db = db.Where(
			"LOWER(username) LIKE ? OR LOWER(email) LIKE ?",
			searchTerm, searchTerm,
		)
	}

	var members []models.ClubMember
	if err := db.Find(&members).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "search failed"})
	}

	// Minimal response shape — no emails or ban flags leak to other members
	type MemberSummary struct {
		ExternalUserID    string  `json:"externalUserId"`
		Username          string  `json:"username"`
		ProfilePictureURL *string `json:"profilePictureUrl,omitempty"`
	}

	res := make([]MemberSummary, len(members))
	for i, m := range members {
		res[i] = MemberSummary{
			ExternalUserID:    m.ExternalUserID,
			Username:          m.Username,
			ProfilePictureURL: m.ProfilePictureURL,
		}
	}

	return c.JSON(res)
}
