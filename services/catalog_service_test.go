package services

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"garage-club-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Without R2 configured, car images land under ./uploads and the car records
// a /uploads URL that the static mount serves.
func TestUploadCarImageLocalFallback(t *testing.T) {
	t.Chdir(t.TempDir())

	db := setupTestDB(t)
	svc := NewCarService(db)
	car := seedCar(t, db, 1993, 45000, 0)

	app := fiber.New()
	app.Post("/cars/:id/image", svc.UploadCarImage)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "rx7.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("not-really-a-jpeg"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/cars/"+car.ID+"/image", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.Car
	require.NoError(t, db.First(&stored, "id = ?", car.ID).Error)
	assert.True(t, strings.HasPrefix(stored.ImageURL, "/uploads/cars/"),
		"expected local URL, got %q", stored.ImageURL)

	// The file really exists where the static mount looks for it
	onDisk := strings.TrimPrefix(stored.ImageURL, "/")
	_, err = os.Stat(onDisk)
	assert.NoError(t, err)
}
