package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/bankdash/bank-system/internal/adapter/http/middleware"
	"github.com/bankdash/bank-system/internal/adapter/http/models"
	"github.com/bankdash/bank-system/internal/commons"
	"github.com/bankdash/bank-system/internal/domain"
	"github.com/bankdash/bank-system/internal/logger"
)

const maxImageUploadBytes = 5 << 20

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (commons.Response[models.ProfileResponse], error)
	UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (commons.Response[models.ProfileResponse], error)
	UpdateImage(ctx context.Context, userID string, r io.Reader, originalName string) (commons.Response[models.ProfileResponse], error)
	OpenImage(ctx context.Context, userID string) (io.ReadCloser, error)
}

type ProfileController struct {
	service ProfileService
}

func NewProfileController(service ProfileService) *ProfileController {
	return &ProfileController{service: service}
}

func (c *ProfileController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	protect := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}

	mux.Handle("GET /profile", protect(c.getProfile))
	mux.Handle("PUT /profile", protect(c.updateProfile))
	mux.Handle("POST /profile/image", protect(c.uploadImage))
	mux.Handle("GET /profile/image", protect(c.getImage))
}

func (c *ProfileController) getProfile(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.GetProfile(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *ProfileController) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.ProfileResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.UpdateProfile(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		status := statusForError(err)
		if response.Message == "validation failed" {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *ProfileController) uploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageUploadBytes)

	file, header, err := r.FormFile("profile_image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.ProfileResponse]("invalid request body", "profile_image file is required"))
		return
	}
	defer file.Close()

	response, err := c.service.UpdateImage(r.Context(), middleware.UserID(r.Context()), file, header.Filename)
	if err != nil {
		status := statusForError(err)
		if response.Message == "validation failed" {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *ProfileController) getImage(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	image, err := c.service.OpenImage(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, commons.ErrorResponse[models.ProfileResponse]("profile image not found"))
			return
		}
		logger.Error("profile controller image fetch failed", err, logger.Fields{
			"userId": userID,
		})
		writeJSON(w, http.StatusInternalServerError, commons.ErrorResponse[models.ProfileResponse]("failed to get profile image", "Unable to fetch profile image right now"))
		return
	}
	defer image.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, image); err != nil {
		logger.Error("profile controller image stream failed", err, logger.Fields{
			"userId": userID,
		})
	}
}
