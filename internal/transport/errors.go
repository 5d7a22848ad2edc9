package transport

import (
	"errors"
	"net/http"

	"github.com/ds124wfegd/image-resizer/internal/entity"
	"github.com/ds124wfegd/image-resizer/internal/transport/middleware"
	"github.com/gin-gonic/gin"
)

const (
	LivenessMsg         = "L application est fonctionelle"
	ValidAPIKeyMsg      = "Clé API valide"
	NotFoundMsg         = "Désolé, la page demandée est introuvable."
	MissingFileMsg      = "Aucun fichier image trouvé."
	DimensionsMsg       = "Les dimensions sont requises"
	UnsupportedTypeMsg  = "Seules les images sont autorisées!"
	UploadTooLargeMsg   = "Fichier trop volumineux"
	ProcessingFailedMsg = "Erreur lors du traitement de l'image"
)

// respondError writes the plain text status and message for err.
func respondError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	_ = c.Error(err)
	c.String(status, msg)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, entity.ErrUnsupportedFileType):
		return http.StatusBadRequest, UnsupportedTypeMsg
	case errors.Is(err, entity.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge, UploadTooLargeMsg
	case errors.Is(err, entity.ErrMissingFile):
		return http.StatusBadRequest, MissingFileMsg
	case errors.Is(err, entity.ErrMissingDimensions), errors.Is(err, entity.ErrInvalidDimensions):
		return http.StatusBadRequest, DimensionsMsg
	case errors.Is(err, entity.ErrInvalidAPIKey):
		return http.StatusForbidden, middleware.InvalidAPIKeyMsg
	case errors.Is(err, entity.ErrRateLimited):
		return http.StatusTooManyRequests, middleware.RateLimitedMsg
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound, NotFoundMsg
	default:
		return http.StatusInternalServerError, ProcessingFailedMsg
	}
}
