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

// HandleTrim handles POST /api/media/trim
// @Summary Trim uploaded audio
// @Description Cut a time range out of an uploaded audio file, optionally applying a gain adjustment
// @Tags media
// @Accept multipart/form-data
// @Produce octet-stream
// @Param file formData file true "Audio file"
// @Param startTime formData string true "Start of the cut in seconds"
// @Param endTime formData string true "End of the cut in seconds"
// @Param gainDb formData string false "Gain adjustment in dB (0 = stream copy)"
// @Success 200 {file} binary "Trimmed audio"
// @Failure 400 {object} models.ErrorResponse "Missing fields or invalid range"
// @Failure 403 {object} models.ErrorResponse "Disabled in production"
// @Failure 500 {object} models.ErrorResponse "Encoder failure"
// @Router /api/media/trim [post]
func (h *Handler) HandleTrim(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequest(c, "No file uploaded")
	}

	startStr := c.FormValue("startTime")
	endStr := c.FormValue("endTime")
	if startStr == "" || endStr == "" {
		return utils.BadRequest(c, "startTime and endTime are required")
	}

	start, err := strconv.ParseFloat(startStr, 64)
	if err != nil {
		return utils.BadRequest(c, "startTime must be a number of seconds")
	}
	end, err := strconv.ParseFloat(endStr, 64)
	if err != nil {
		return utils.BadRequest(c, "endTime must be a number of seconds")
	}

	var gainDb float64
	if gainStr := c.FormValue("gainDb"); gainStr != "" {
		gainDb, err = strconv.ParseFloat(gainStr, 64)
		if err != nil {
			return utils.BadRequest(c, "gainDb must be a number of decibels")
		}
	}

	data, err := readUpload(fileHeader)
	if err != nil {
		return utils.InternalError(c, "Failed to read upload", err.Error())
	}

	req := &models.TrimRequest{
		Data:         data,
		FileName:     fileHeader.Filename,
		StartSeconds: start,
		EndSeconds:   end,
		GainDb:       gainDb,
	}

	result, err := h.Trimmer.Trim(context.Background(), req)
	if err != nil {
		log.Printf("[Trim] %s: %v\n", fileHeader.Filename, err)
		return mapServiceError(c, "Trim failed", err)
	}

	encodedFilename := url.PathEscape(result.FileName)

	c.Set(fiber.HeaderContentType, utils.ContentTypeFromExt(utils.ExtFromFilename(result.FileName)))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, result.FileName, encodedFilename))
	c.Set("X-File-Name", result.FileName)
	if result.BitrateKbps > 0 {
		c.Set("X-Bitrate", fmt.Sprintf("%.0f", result.BitrateKbps))
	}
	if result.DurationSeconds > 0 {
		c.Set("X-Duration", fmt.Sprintf("%.2f", result.DurationSeconds))
	}

	return c.Send(result.Output)
}
