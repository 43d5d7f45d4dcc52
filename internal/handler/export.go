package handler

import (
	"fmt"
	"net/http"
	"time"

	"project-manager/internal/middleware"
	"project-manager/internal/service"
	"project-manager/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler writes the signed-in user's projects as a spreadsheet.
type ExportHandler struct {
	Projects *service.ProjectService
}

func NewExportHandler(projects *service.ProjectService) *ExportHandler {
	return &ExportHandler{Projects: projects}
}

// ExportXLSX streams an XLSX workbook of the caller's projects.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Authentification requise.")
		return
	}

	projects := h.Projects.ListForOwner(user.ID)

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Projets"
	index, err := f.NewSheet(sheet)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Impossible de créer la feuille.")
		return
	}
	f.SetActiveSheet(index)

	headers := []string{"ID", "Titre", "Description", "Statut", "Créé le"}
	for i, hdr := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cell, hdr)
	}

	for idx, p := range projects {
		row := idx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.Title)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), p.Description)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), p.Status)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), p.CreatedAt.Format("2006-01-02"))
	}

	f.SetColWidth(sheet, "A", "A", 6)
	f.SetColWidth(sheet, "B", "B", 25)
	f.SetColWidth(sheet, "C", "C", 40)
	f.SetColWidth(sheet, "D", "D", 12)
	f.SetColWidth(sheet, "E", "E", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"projets_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Export impossible.")
	}
}
