package handler

import (
	"errors"
	"net/http"
	"strconv"

	"project-manager/internal/middleware"
	"project-manager/internal/service"
	"project-manager/internal/util"

	"github.com/gin-gonic/gin"
)

// ProjectHandler exposes the project CRUD for the signed-in user.
type ProjectHandler struct {
	Projects *service.ProjectService
}

func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{Projects: projects}
}

type createProjectReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type setStatusReq struct {
	Status string `json:"status"`
}

// List returns the caller's projects, insertion order.
func (h *ProjectHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Authentification requise.")
		return
	}

	util.Success(c, util.Response{
		"projects": h.Projects.ListForOwner(user.ID),
	})
}

// Create adds a project owned by the caller.
func (h *ProjectHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Authentification requise.")
		return
	}

	var req createProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Corps de requête invalide.")
		return
	}

	project, err := h.Projects.Create(user.ID, req.Title, req.Description, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Le titre et la description sont requis.")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Impossible d'ajouter le projet.")
		}
		return
	}

	util.Success(c, util.Response{
		"message": "Projet ajouté avec succès",
		"project": project,
	})
}

// UpdateStatus changes the status of one owned project.
func (h *ProjectHandler) UpdateStatus(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Authentification requise.")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID invalide.")
		return
	}

	var req setStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Corps de requête invalide.")
		return
	}

	project, err := h.Projects.SetStatus(user.ID, id, req.Status)
	if err != nil {
		h.writeProjectErr(c, err, "Impossible de modifier le projet.")
		return
	}

	util.Success(c, util.Response{
		"message": "Statut mis à jour",
		"project": project,
	})
}

// Delete removes one owned project.
func (h *ProjectHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Authentification requise.")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID invalide.")
		return
	}

	deleted, err := h.Projects.Delete(user.ID, id)
	if err != nil {
		h.writeProjectErr(c, err, "Impossible de supprimer le projet.")
		return
	}

	util.Success(c, util.Response{
		"message": "Projet supprimé avec succès",
		"deleted": deleted,
	})
}

// writeProjectErr maps the service taxonomy onto status codes.
func (h *ProjectHandler) writeProjectErr(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Le statut est requis.")
	case errors.Is(err, service.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Projet introuvable.")
	case errors.Is(err, service.ErrForbidden):
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "Ce projet ne vous appartient pas.")
	case errors.Is(err, service.ErrStoreUnavailable):
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Impossible de lire les projets.")
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, fallback)
	}
}
