package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"garage-club-system/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ValuationSyncClient pulls market valuations from the pricing service and
// mirrors them locally so catalog queries never fan out over the network.
type ValuationSyncClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	DB         *gorm.DB
}

func NewValuationSyncClient(db *gorm.DB) *ValuationSyncClient {
	baseURL := os.Getenv("PRICING_SERVICE_URL")
	if baseURL == "" {
		log.Fatal("PRICING_SERVICE_URL environment variable is required")
	}
	token := os.Getenv("GARAGE_SERVICE_TOKEN")
	if token == "" {
		log.Fatal("GARAGE_SERVICE_TOKEN environment variable is required for valuation sync")
	}

	return &ValuationSyncClient{
		BaseURL: baseURL,
		Token:   token,
		DB:      db,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *ValuationSyncClient) GetChangedValuations(ctx context.Context, since time.Time) ([]models.MarketValuation, error) {
	since = since.UTC()

	u, err := url.Parse(fmt.Sprintf("%s/api/v1/public/valuations", c.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("since", since.Format(time.RFC3339))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Service-Token", c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call pricing service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("pricing service returned status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Valuations []models.MarketValuation `json:"valuations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode pricing service response: %w", err)
	}

	return response.Valuations, nil
}

// PollValuations mirrors changed valuations into market_valuations and folds
// the fresh values into cars.current_value so budget math stays current.
func PollValuations(ctx context.Context, client *ValuationSyncClient, pollInterval time.Duration) {
	log.Println("Starting valuation polling (DB-backed)...")
	lastSyncTime := time.Now().UTC().Add(-24 * time.Hour)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Valuation polling stopped.")
			return
		case <-ticker.C:
			logTime := time.Now().UTC()
			log.Printf("Polling for valuation changes since %s...", lastSyncTime.Format(time.RFC3339))

			valuations, err := client.GetChangedValuations(ctx, lastSyncTime)
			if err != nil {
				log.Printf("❌ Error polling valuations: %v", err)
				continue
			}

			count := len(valuations)
			if count == 0 {
				log.Println("➡️ No new valuation changes.")
				continue
			}

			log.Printf("📥 Received %d valuation change(s) from pricing service.", count)

			if err := client.DB.Clauses(
				clause.OnConflict{
					Columns: []clause.Column{{Name: "car_id"}},
					DoUpdates: clause.AssignmentColumns([]string{
						"value",
						"source",
						"sampled_at",
						"updated_at",
					}),
				},
			).Create(&valuations).Error; err != nil {
				log.Printf("❌ Failed to upsert %d valuation(s) into market_valuations: %v", count, err)
				// Do NOT advance lastSyncTime on failure — retry same window next tick
				continue
			}

			// Fold mirrored values into the catalog
			for _, v := range valuations {
				if err := client.DB.Model(&models.Car{}).
					Where("id = ?", v.CarID).
					Update("current_value", v.Value).Error; err != nil {
					log.Printf("⚠️ Failed to update current_value for car %s: %v", v.CarID, err)
				}
			}

			lastSyncTime = logTime
			log.Printf("✅ Upserted %d valuation(s) into market_valuations table.", count)
		}
	}
}

// GetValuationByCarID queries the local mirror.
func GetValuationByCarID(db *gorm.DB, carID string) (models.MarketValuation, bool, error) {
	var valuation models.MarketValuation
	if err := db.Where("car_id = ?", carID).First(&valuation).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return valuation, false, nil
		}
		return valuation, false, err
	}
	return valuation, true, nil
}
