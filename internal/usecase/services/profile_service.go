package services

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/bankdash/bank-system/internal/adapter/http/models"
	"github.com/bankdash/bank-system/internal/adapter/repository/repo_interfaces"
	"github.com/bankdash/bank-system/internal/commons"
	"github.com/bankdash/bank-system/internal/domain"
	"github.com/bankdash/bank-system/internal/logger"
)

type ImageStore interface {
	Save(r io.Reader, originalName string) (string, error)
	Open(name string) (io.ReadCloser, error)
}

type ProfileService struct {
	userRepo    repo_interfaces.UserRepository
	profileRepo repo_interfaces.ProfileRepository
	images      ImageStore
}

func NewProfileService(userRepo repo_interfaces.UserRepository, profileRepo repo_interfaces.ProfileRepository, images ImageStore) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		images:      images,
	}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (commons.Response[models.ProfileResponse], error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.ProfileResponse]("profile not found"), err
		}
		logger.Error("profile service user lookup failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[models.ProfileResponse]("failed to get profile", "Unable to fetch profile right now"), err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.ProfileResponse]("profile not found"), err
		}
		logger.Error("profile service profile lookup failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[models.ProfileResponse]("failed to get profile", "Unable to fetch profile right now"), err
	}

	return commons.SuccessResponse("profile fetched successfully", profileResponse(user, profile)), nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (commons.Response[models.ProfileResponse], error) {
	logger.Info("profile service update request", logger.Fields{
		"userId":  userID,
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.ProfileResponse]("validation failed", err.Error()), err
	}

	updated, err := s.userRepo.UpdateDetails(ctx, domain.User{
		ID:        userID,
		Email:     strings.TrimSpace(req.Email),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	})
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.ProfileResponse]("profile not found"), err
		}
		logger.Error("profile service update failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[models.ProfileResponse]("failed to update profile", "Unable to update profile right now"), err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		logger.Error("profile service profile lookup failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[models.ProfileResponse]("failed to update profile", "Unable to update profile right now"), err
	}

	return commons.SuccessResponse("profile updated successfully", profileResponse(updated, profile)), nil
}

func (s *ProfileService) UpdateImage(ctx context.Context, userID string, r io.Reader, originalName string) (commons.Response[models.ProfileResponse], error) {
	logger.Info("profile service update image request", logger.Fields{
		"userId":   userID,
		"fileName": originalName,
	})

	name, err := s.images.Save(r, originalName)
	if err != nil {
		return commons.ErrorResponse[models.ProfileResponse]("validation failed", err.Error()), err
	}

	profile, err := s.profileRepo.UpdateImagePath(ctx, userID, name)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.ProfileResponse]("profile not found"), err
		}
		logger.Error("profile service image update failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[models.ProfileResponse]("failed to update profile image", "Unable to update profile image right now"), err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Error("profile service user lookup failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[models.ProfileResponse]("failed to update profile image", "Unable to update profile image right now"), err
	}

	return commons.SuccessResponse("profile image updated successfully", profileResponse(user, profile)), nil
}

// OpenImage returns the user's stored profile image for streaming.
func (s *ProfileService) OpenImage(ctx context.Context, userID string) (io.ReadCloser, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.ImagePath == nil {
		return nil, domain.ErrRecordNotFound
	}

	return s.images.Open(*profile.ImagePath)
}

func profileResponse(user domain.User, profile domain.Profile) models.ProfileResponse {
	return models.ProfileResponse{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		HasImage:  profile.ImagePath != nil,
	}
}
