// workers/member_sync_worker.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"garage-club-system/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MirroredMemberFromProfile matches the JSON response from the profile sync service.
type MirroredMemberFromProfile struct {
	ID                string    `json:"id"`
	ExternalID        string    `json:"external_id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	FirstName         *string   `json:"first_name,omitempty"`
	LastName          *string   `json:"last_name,omitempty"`
	Bio               *string   `json:"bio,omitempty"`
	ProfilePictureURL *string   `json:"profile_picture_url,omitempty"`
	AccountStatus     string    `json:"account_status"`
	ReferralCode      string    `json:"referral_code"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// GetMemberChangesResponse is the top-level structure of the sync service response.
type GetMemberChangesResponse struct {
	Users []MirroredMemberFromProfile `json:"users"`
}

type MemberSyncWorker struct {
	db           *gorm.DB
	interval     time.Duration
	baseURL      string // e.g., "http://localhost:8500"
	endpointPath string // e.g., "/api/v1/public/profiles"
	serviceToken string
	httpClient   *http.Client
}

// NewMemberSyncWorker requires the sync service URL and this service's own token.
func NewMemberSyncWorker(db *gorm.DB, syncServiceBaseURL, endpointPath, serviceToken string) *MemberSyncWorker {
	return &MemberSyncWorker{
		db:           db,
		interval:     1 * time.Minute,
		baseURL:      syncServiceBaseURL,
		endpointPath: endpointPath,
		serviceToken: serviceToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (w *MemberSyncWorker) Start(ctx context.Context) {
	log.Println("🔁 Starting Member Sync Worker (sync-service → club_members)…")
	go w.run(ctx)
}

func (w *MemberSyncWorker) run(ctx context.Context) {
	// Initial sync (backfill if needed) - sync from the beginning of time
	if err := w.syncBatch(ctx, time.Time{}); err != nil {
		log.Printf("⚠️ Initial member sync failed: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// Incremental syncs use the last update time from our local table
			lastSyncTime := w.getLastSyncTime()
			if err := w.syncBatch(ctx, lastSyncTime); err != nil {
				log.Printf("❌ Member sync batch failed: %v", err)
			}
		case <-ctx.Done():
			log.Println("⏹️ Member Sync Worker stopped")
			return
		}
	}
}

// getLastSyncTime finds the most recent UpdatedAt from the local ClubMember table.
func (w *MemberSyncWorker) getLastSyncTime() time.Time {
	var lastTime time.Time
	err := w.db.Raw("SELECT MAX(updated_at) FROM club_members WHERE deleted_at IS NULL").Scan(&lastTime).Error
	if err != nil || lastTime.IsZero() {
		return time.Unix(0, 0)
	}
	return lastTime
}

// syncBatch fetches member changes from the sync service and upserts the local ClubMember table.
func (w *MemberSyncWorker) syncBatch(ctx context.Context, since time.Time) error {
	sinceStr := since.UTC().Format(time.RFC3339)
	log.Printf("[SYNC] 📡 Fetching member changes from sync service since=%s", sinceStr)

	base, err := url.Parse(w.baseURL)
	if err != nil {
		return fmt.Errorf("invalid base sync service URL '%s': %w", w.baseURL, err)
	}

	endpointURL := base.JoinPath(w.endpointPath)
	q := endpointURL.Query()
	q.Set("since", sinceStr)
	endpointURL.RawQuery = q.Encode()
	finalURL := endpointURL.String()

	req, err := http.NewRequestWithContext(ctx, "GET", finalURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request to %s: %w", finalURL, err)
	}

	req.Header.Set("X-Service-Token", w.serviceToken)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		log.Printf("[SYNC] ❌ Request to %s failed: %v", finalURL, err)
		return fmt.Errorf("HTTP request to sync service failed: %w", err)
	}
	defer func() {
		// Always drain & close to prevent connection leaks
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Printf("[SYNC] ❌ Sync service returned %d for %s: %s", resp.StatusCode, finalURL, string(body))
		return fmt.Errorf("sync service non-200 response: %d — %s", resp.StatusCode, string(body))
	}

	var response GetMemberChangesResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fmt.Errorf("failed to decode sync service response: %w", err)
	}

	if len(response.Users) == 0 {
		log.Printf("[SYNC] ✅ No member changes received since %s", sinceStr)
		return nil
	}

	log.Printf("[SYNC] 📥 Processing %d member(s) from sync service…", len(response.Users))

	var upsertCount, errorCount int
	for _, remote := range response.Users {
		local := models.ClubMember{
			ID:                remote.ID,
			ExternalUserID:    remote.ExternalID,
			Username:          remote.Username,
			Email:             remote.Email,
			ProfilePictureURL: remote.ProfilePictureURL,
			FirstName:         remote.FirstName,
			LastName:          remote.LastName,
			Bio:               remote.Bio,
			ReferralCode:      remote.ReferralCode,
			CreatedAt:         remote.CreatedAt,
			UpdatedAt:         remote.UpdatedAt,
		}

		if err := w.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "external_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"username", "email", "profile_picture_url",
				"first_name", "last_name", "bio", "referral_code",
				"created_at", "updated_at",
			}),
		}).Create(&local).Error; err != nil {
			errorCount++
			log.Printf("[SYNC] ⚠️ Failed to upsert club_member (external_id=%q, username=%q): %v",
				remote.ExternalID, remote.Username, err)
		} else {
			upsertCount++
		}
	}

	log.Printf("[SYNC] ✅ Synced %d member(s) (%d upserted, %d errors)",
		len(response.Users), upsertCount, errorCount)

	return nil
}
