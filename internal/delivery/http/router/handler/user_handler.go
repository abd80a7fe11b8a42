package handler

import (
	"net/http"
	"time"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for user profile handlers.
type UserHandler struct {
	userUsecase usecase.UserUsecase
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(userUsecase usecase.UserUsecase) *UserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

// userProfile is the public projection of a user. Credential material and
// pending tokens are never serialized.
type userProfile struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"fullName"`
	EmailConfirmed bool      `json:"isEmailConfirmed"`
	HasGoogle      bool      `json:"hasGoogleAccount"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toUserProfile(user *entity.User) *userProfile {
	return &userProfile{
		ID:             user.ID,
		Email:          user.Email,
		FullName:       user.FullName,
		EmailConfirmed: user.EmailConfirmed,
		HasGoogle:      user.GoogleID != nil,
		CreatedAt:      user.CreatedAt,
	}
}

// GetProfile returns the authenticated user's profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Missing authentication")
	}

	user, err := h.userUsecase.FindByID(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}
	if user == nil {
		return errors.WithStack(domainerrors.ErrUserNotFound)
	}

	return response.Success(c, http.StatusOK, toUserProfile(user), "")
}

type updateProfileRequest struct {
	FullName *string `json:"fullName" validate:"omitempty,min=1"`
}

// UpdateProfile applies a partial update to the authenticated user's profile.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Missing authentication")
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userUsecase.Update(c.Request().Context(), userID, &usecase.UpdateUserInput{
		FullName: req.FullName,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserProfile(user), "Profile updated")
}
