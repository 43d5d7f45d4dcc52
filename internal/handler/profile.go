package handler

import (
	"errors"
	"net/http"

	"project-manager/internal/middleware"
	"project-manager/internal/service"
	"project-manager/internal/util"

	"github.com/gin-gonic/gin"
)

// ProfileHandler covers preference merges and password changes.
type ProfileHandler struct {
	Users *service.UserService
}

func NewProfileHandler(users *service.UserService) *ProfileHandler {
	return &ProfileHandler{Users: users}
}

type preferencesReq struct {
	Prefs map[string]any `json:"prefs"`
}

type changePasswordReq struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// UpdatePreferences merges the submitted keys into the stored ones.
func (h *ProfileHandler) UpdatePreferences(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Authentification requise.")
		return
	}

	var req preferencesReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Prefs == nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Aucune préférence fournie.")
		return
	}

	merged, err := h.Users.UpdatePreferences(user.ID, req.Prefs)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Impossible d'enregistrer les préférences.")
		return
	}

	util.Success(c, util.Response{
		"prefs": merged,
	})
}

// ChangePassword re-verifies the current password first; the session
// stays open on success.
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Authentification requise.")
		return
	}

	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "L'ancien et le nouveau mot de passe sont requis.")
		return
	}

	if err := h.Users.ChangePassword(user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Mot de passe actuel incorrect.")
		case errors.Is(err, service.ErrValidation):
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Le nouveau mot de passe est requis.")
		default:
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Impossible de modifier le mot de passe.")
		}
		return
	}

	util.Success(c, util.Response{
		"message": "Mot de passe modifié avec succès",
	})
}
