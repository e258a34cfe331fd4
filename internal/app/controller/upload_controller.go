package controller

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yucheng/cardvault-backend/internal/errors"
	"github.com/yucheng/cardvault-backend/internal/middleware"
	"github.com/yucheng/cardvault-backend/pkg/imghost"
)

// maxUploadSize caps card scans at 16 MiB, matching the image host's limit.
const maxUploadSize = 16 << 20

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type UploadController struct {
	imageClient *imghost.Client
}

func NewUploadController(imageClient *imghost.Client) *UploadController {
	return &UploadController{
		imageClient: imageClient,
	}
}

// UploadImage forwards a card scan to the image host and returns its URL
// POST /api/v1/upload/image
func (ctrl *UploadController) UploadImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		apperrors.BadRequest(c, apperrors.UploadMissingFile, "No image file in request")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExtensions[ext] {
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "File must be a jpg, png, gif or webp image")
		return
	}

	if fileHeader.Size > maxUploadSize {
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Image exceeds the 16MB size limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", err, map[string]interface{}{
			"filename": fileHeader.Filename,
		})
		apperrors.InternalError(c, err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error("Failed to read uploaded file", err, map[string]interface{}{
			"filename": fileHeader.Filename,
		})
		apperrors.InternalError(c, err.Error())
		return
	}

	result, err := ctrl.imageClient.Upload(c.Request.Context(), data, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, imghost.ErrEmptyImage) {
			apperrors.BadRequest(c, apperrors.UploadMissingFile, "Image file is empty")
			return
		}
		log.Error("Image host rejected upload", err, map[string]interface{}{
			"filename": fileHeader.Filename,
			"size":     fileHeader.Size,
		})
		apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.UploadFailed, err.Error())
		return
	}

	log.Info("Image uploaded successfully", map[string]interface{}{
		"filename": fileHeader.Filename,
		"url":      result.URL,
	})

	c.JSON(http.StatusOK, gin.H{
		"url":         result.URL,
		"display_url": result.DisplayURL,
		"delete_url":  result.DeleteURL,
	})
}
