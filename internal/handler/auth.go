package handler

import (
	"errors"
	"net/http"

	"project-manager/internal/middleware"
	"project-manager/internal/service"
	"project-manager/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler covers signup, login, logout and the current-user probe.
type AuthHandler struct {
	Users      *service.UserService
	CookieName string
	CookieTTL  int // seconds
}

func NewAuthHandler(users *service.UserService, cookieName string, ttlHours int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24 * 30
	}
	return &AuthHandler{
		Users:      users,
		CookieName: cookieName,
		CookieTTL:  ttlHours * 3600,
	}
}

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// setSessionCookie installs the bearer token: HttpOnly, whole-application
// path. Secure is left to the deployment (TLS terminator).
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(h.CookieName, token, h.CookieTTL, "/", "", false, true)
}

// Signup creates the account and logs it straight in.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Corps de requête invalide.")
		return
	}

	view, token, err := h.Users.Signup(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			util.Error(c, http.StatusConflict, util.CodeConflict, "Ce nom d'utilisateur est déjà pris.")
		case errors.Is(err, service.ErrValidation):
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Le nom d'utilisateur et le mot de passe sont requis.")
		default:
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Impossible de créer le compte.")
		}
		return
	}

	h.setSessionCookie(c, token)
	util.Success(c, util.Response{
		"message": "Compte créé avec succès",
		"user":    view,
	})
}

// Login checks credentials and rotates the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Corps de requête invalide.")
		return
	}

	view, token, err := h.Users.Login(req.Username, req.Password)
	if err != nil {
		// unknown username and wrong password answer identically
		if errors.Is(err, service.ErrInvalidCredentials) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Nom d'utilisateur ou mot de passe incorrect.")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Connexion impossible.")
		}
		return
	}

	h.setSessionCookie(c, token)
	util.Success(c, util.Response{
		"message": "Connexion réussie",
		"user":    view,
	})
}

// Logout revokes the session and clears the cookie. Revoking an already
// dead token is a no-op, so this always succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.CookieName); err == nil {
		_ = h.Users.Logout(token)
	}
	c.SetCookie(h.CookieName, "", -1, "/", "", false, true)
	util.Success(c, util.Response{
		"message": "Déconnexion réussie",
	})
}

// Me returns the signed-in user with preferences.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Authentification requise.")
		return
	}

	util.Success(c, util.Response{
		"user": util.Response{
			"id":       user.ID,
			"username": user.Username,
			"prefs":    user.Preferences,
		},
	})
}
