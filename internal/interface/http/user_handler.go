package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/travelbuddy/journal-api/internal/application"
	"github.com/travelbuddy/journal-api/internal/domain/entity"
	"github.com/travelbuddy/journal-api/pkg/response"
	"github.com/travelbuddy/journal-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createAccountRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// userView is the sanitized account representation; the password digest never
// leaves the service.
func userView(u *entity.User) gin.H {
	return gin.H{"fullName": u.FullName, "email": u.Email}
}

// CreateAccount POST /create-account
func (h *UserHandler) CreateAccount(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "All fields are required", validation.ToDetails(err))
		return
	}

	u, token, err := h.Svc.Register(c.Request.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Error(c, http.StatusBadRequest, "This email is already being used", nil)
			return
		}
		h.Logger.WithError(err).Error("create account failed")
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusCreated, "Registration Successful", gin.H{
		"user":        userView(u),
		"accessToken": token,
	})
}

// Login POST /login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Email and Password are required", validation.ToDetails(err))
		return
	}

	u, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusBadRequest, "User not found", nil)
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Error(c, http.StatusBadRequest, "Incorrect Password", nil)
		default:
			h.Logger.WithError(err).Error("login failed")
			response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		}
		return
	}

	response.Success(c, http.StatusOK, "Login Successful", gin.H{
		"user":        userView(u),
		"accessToken": token,
	})
}

// GetUser GET /get-user
func (h *UserHandler) GetUser(c *gin.Context) {
	uid := c.GetString("userID")
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("user_id", uid).Error("get profile failed")
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "", gin.H{
		"user": gin.H{
			"id":        u.ID,
			"fullName":  u.FullName,
			"email":     u.Email,
			"createdOn": u.CreatedOn,
		},
	})
}
