package handlers

import (
	"bufio"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/gbinu42/hudra-media/models"
	"github.com/gbinu42/hudra-media/utils"
)

// HandleDownload handles POST /api/media/download
// @Summary Download audio from a remote platform
// @Description Fetch audio from a YouTube or Facebook URL, optionally streaming live progress as newline-delimited JSON
// @Tags media
// @Accept json
// @Produce octet-stream
// @Param request body models.DownloadRequest true "Download request"
// @Success 200 {file} binary "Downloaded audio (or NDJSON progress stream)"
// @Failure 400 {object} models.ErrorResponse "Missing or unsupported URL"
// @Failure 403 {object} models.ErrorResponse "Disabled in production"
// @Failure 500 {object} models.ErrorResponse "Download failure"
// @Router /api/media/download [post]
func (h *Handler) HandleDownload(c *fiber.Ctx) error {
	var req models.DownloadRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	// Reject unsupported platforms before any process is spawned and, in
	// streaming mode, before the response status is committed.
	if _, _, err := utils.ResolvePlatform(req.URL); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	if req.StreamProgress {
		return h.streamDownload(c, req.URL)
	}

	result, err := h.Downloader.Download(context.Background(), req.URL)
	if err != nil {
		log.Printf("[Download] %s: %v\n", req.URL, err)
		return h.downloadError(c, err)
	}

	encodedFilename := url.PathEscape(result.FileName)

	c.Set(fiber.HeaderContentType, result.MimeType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, result.FileName, encodedFilename))
	c.Set("X-File-Name", result.FileName)

	return c.Send(result.Data)
}

// streamDownload writes newline-delimited JSON progress events, terminated
// by exactly one complete or error message.
func (h *Handler) streamDownload(c *fiber.Ctx, rawURL string) error {
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderCacheControl, "no-cache")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		enc := json.NewEncoder(w)

		emit := func(u models.ProgressUpdate) {
			enc.Encode(models.ProgressMessage{
				Type:     "progress",
				Percent:  u.Percent,
				Speed:    u.Speed,
				ETA:      u.ETA,
				FileSize: u.SizeHint,
			})
			w.Flush()
		}

		result, err := h.Downloader.DownloadWithProgress(context.Background(), rawURL, emit)
		if err != nil {
			log.Printf("[Download] %s: %v\n", rawURL, err)
			enc.Encode(models.ErrorMessage{Type: "error", Message: err.Error()})
			w.Flush()
			return
		}

		enc.Encode(models.CompleteMessage{
			Type:     "complete",
			FileName: result.FileName,
			FileSize: result.FileSize,
			MimeType: result.MimeType,
			Bitrate:  result.BitrateKbps,
			Duration: result.DurationSeconds,
			FileData: base64.StdEncoding.EncodeToString(result.Data),
		})
		w.Flush()
	})

	return nil
}

// downloadError builds the 500 body for non-streaming failures, enriched
// with a hint and the installed yt-dlp version for diagnostics.
func (h *Handler) downloadError(c *fiber.Ctx, err error) error {
	var ve utils.ValidationError
	if errors.As(err, &ve) {
		return utils.BadRequest(c, ve.Error())
	}

	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error:        "Download failed",
		Details:      err.Error(),
		Hint:         "Check that yt-dlp is installed and up to date; platforms change their formats frequently",
		YtDlpVersion: h.Downloader.Version(context.Background()),
	})
}
