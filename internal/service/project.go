package service

import (
	"fmt"
	"time"

	"project-manager/internal/models"
	"project-manager/internal/store"
	"project-manager/internal/util"
)

// ProjectService owns the project records: listing, creation, status
// changes and deletion, with ownership enforced on every mutation.
type ProjectService struct {
	store  *store.Store
	fileID string
}

func NewProjectService(s *store.Store, fileID string) *ProjectService {
	return &ProjectService{store: s, fileID: fileID}
}

// ListForOwner returns the owner's projects in insertion order.
func (s *ProjectService) ListForOwner(ownerID int) []models.Project {
	own := []models.Project{}
	for _, p := range store.Load[models.Project](s.store, s.fileID) {
		if p.OwnerID == ownerID {
			own = append(own, p)
		}
	}
	return own
}

// Create appends a new project for ownerID. The id follows the existing
// sequence, one past the last element, computed under the store lock.
func (s *ProjectService) Create(ownerID int, title, description, status string) (models.Project, error) {
	if err := util.NonEmpty("title", title); err != nil {
		return models.Project{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := util.NonEmpty("description", description); err != nil {
		return models.Project{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if status == "" {
		status = models.StatusInProgress
	}

	var created models.Project
	err := store.UpdateLenient(s.store, s.fileID, func(projects []models.Project) ([]models.Project, error) {
		id := 1
		if len(projects) > 0 {
			id = projects[len(projects)-1].ID + 1
		}
		created = models.Project{
			ID:          id,
			Title:       title,
			Description: description,
			Status:      status,
			OwnerID:     ownerID,
			CreatedAt:   time.Now().UTC(),
		}
		return append(projects, created), nil
	})
	if err != nil {
		return models.Project{}, err
	}
	return created, nil
}

// Delete removes the project if it exists and belongs to ownerID. The
// remaining records keep their order. Returns the removed project.
func (s *ProjectService) Delete(ownerID, id int) (models.Project, error) {
	var removed models.Project
	err := store.Update(s.store, s.fileID, func(projects []models.Project) ([]models.Project, error) {
		for i, p := range projects {
			if p.ID != id {
				continue
			}
			if p.OwnerID != ownerID {
				return nil, ErrForbidden
			}
			removed = p
			return append(projects[:i], projects[i+1:]...), nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return models.Project{}, tagStoreErr(err)
	}
	return removed, nil
}

// SetStatus updates the status of an owned project in place. The status
// value is free form but must be present.
func (s *ProjectService) SetStatus(ownerID, id int, status string) (models.Project, error) {
	if err := util.NonEmpty("status", status); err != nil {
		return models.Project{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var updated models.Project
	err := store.Update(s.store, s.fileID, func(projects []models.Project) ([]models.Project, error) {
		for i := range projects {
			if projects[i].ID != id {
				continue
			}
			if projects[i].OwnerID != ownerID {
				return nil, ErrForbidden
			}
			projects[i].Status = status
			updated = projects[i]
			return projects, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return models.Project{}, tagStoreErr(err)
	}
	return updated, nil
}
