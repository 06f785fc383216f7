package handlers

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/gbinu42/hudra-media/config"
	"github.com/gbinu42/hudra-media/services"
	"github.com/gbinu42/hudra-media/utils"
)

// Handler bundles the media services behind the HTTP surface.
type Handler struct {
	Transcoder *services.Transcoder
	Trimmer    *services.Trimmer
	Downloader *services.Downloader
}

func New(transcoder *services.Transcoder, trimmer *services.Trimmer, downloader *services.Downloader) *Handler {
	return &Handler{
		Transcoder: transcoder,
		Trimmer:    trimmer,
		Downloader: downloader,
	}
}

// RequireNonProduction gates the media endpoints to non-production
// deployments. This is a deployment-mode check, not authorization.
func RequireNonProduction(c *fiber.Ctx) error {
	if config.IsProduction() {
		return utils.Forbidden(c, "Media endpoints are disabled in production")
	}
	return c.Next()
}

// readUpload buffers a multipart upload fully into memory.
func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// mapServiceError turns a service failure into the matching HTTP response:
// validation problems are 400, everything process-level is 500 with the
// underlying message carried in details for operator diagnosis.
func mapServiceError(c *fiber.Ctx, message string, err error) error {
	var ve utils.ValidationError
	if errors.As(err, &ve) {
		return utils.BadRequest(c, ve.Error())
	}
	return utils.InternalError(c, message, err.Error())
}
