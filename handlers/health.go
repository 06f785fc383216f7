package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gbinu42/hudra-media/models"
)

// HandleHealth handles GET /health
// @Summary Health check
// @Description Check if the server is running
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UnixMilli(),
	})
}
