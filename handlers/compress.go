package handlers

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/gbinu42/hudra-media/models"
	"github.com/gbinu42/hudra-media/utils"
)

// HandleCompress handles POST /api/media/compress
// @Summary Compress uploaded audio
// @Description Re-encode an uploaded audio file toward a quality tier, skipping files already at or below the target bit rate
// @Tags media
// @Accept multipart/form-data
// @Produce octet-stream
// @Param file formData file true "Audio file"
// @Param quality formData string false "low, medium or high (default low)"
// @Success 200 {file} binary "Compressed audio"
// @Failure 400 {object} models.ErrorResponse "No file uploaded"
// @Failure 403 {object} models.ErrorResponse "Disabled in production"
// @Failure 500 {object} models.ErrorResponse "Encoder failure"
// @Router /api/media/compress [post]
func (h *Handler) HandleCompress(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequest(c, "No file uploaded")
	}

	data, err := readUpload(fileHeader)
	if err != nil {
		return utils.InternalError(c, "Failed to read upload", err.Error())
	}

	req := &models.TranscodeRequest{
		Data:     data,
		FileName: fileHeader.Filename,
		Quality:  c.FormValue("quality"),
	}

	// Deliberately detached from the connection: closing it does not kill
	// the encoder.
	result, err := h.Transcoder.Compress(context.Background(), req)
	if err != nil {
		log.Printf("[Compress] %s: %v\n", fileHeader.Filename, err)
		return mapServiceError(c, "Compression failed", err)
	}

	filename := utils.SanitizeFilename(fileHeader.Filename)
	if filename == "" {
		filename = "audio"
	}
	encodedFilename := url.PathEscape(filename)

	c.Set(fiber.HeaderContentType, result.MimeType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, filename, encodedFilename))
	c.Set("X-Original-Size", strconv.FormatInt(result.OriginalSize, 10))
	c.Set("X-Compressed-Size", strconv.FormatInt(result.CompressedSize, 10))
	if result.Skipped {
		c.Set("X-Skipped-Reason", result.SkipReason)
	}

	return c.Send(result.Output)
}
