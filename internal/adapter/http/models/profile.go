package models

import (
	"errors"
	"strings"
)

type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (r UpdateProfileRequest) Validate() error {
	if email := strings.TrimSpace(r.Email); email != "" && !strings.Contains(email, "@") {
		return errors.New("email is not valid")
	}
	return nil
}

type ProfileResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	HasImage  bool   `json:"hasImage"`
}
