package server

import (
	"context"
	"fmt"
	"time"

	"trak/internal/api"
	"trak/internal/hierarchy"
	"trak/internal/models"
	"trak/internal/store"
)

const maxProjectNameLength = 200

// ProjectService validates and persists projects. Items written through
// it always satisfy the forest invariants; items read through it are
// migrated from the legacy flat shape on the way out.
type ProjectService struct {
	store *store.Store
}

func NewProjectService(projectStore *store.Store) *ProjectService {
	return &ProjectService{store: projectStore}
}

func (p *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	projects, err := p.store.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		projects[i].Items, _ = models.MigrateItems(projects[i].Items)
	}
	return projects, nil
}

func (p *ProjectService) Get(ctx context.Context, id int64) (*models.Project, error) {
	project, err := p.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, notFound(fmt.Errorf("project %d not found", id))
	}
	project.Items, _ = models.MigrateItems(project.Items)
	return project, nil
}

func (p *ProjectService) Create(ctx context.Context, req api.ProjectCreateRequest) (*models.Project, error) {
	project := models.Project{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      req.Status,
		Items:       req.Items,
	}
	if err := normalizeProject(&project); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	if err := p.store.CreateProject(ctx, &project); err != nil {
		if isUniqueConstraint(err) {
			return nil, conflictCode(fmt.Errorf("project %d already exists", project.ID), ErrCodeProjectIDExists)
		}
		return nil, err
	}
	return &project, nil
}

// Put upserts: an unknown id creates the project with that id. This is
// what lets the polling sync write back snapshots without first checking
// existence.
func (p *ProjectService) Put(ctx context.Context, id int64, project models.Project) (*models.Project, error) {
	project.ID = id
	if err := normalizeProject(&project); err != nil {
		return nil, err
	}

	project.UpdatedAt = time.Now().UTC()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = project.UpdatedAt
	}

	if err := p.store.PutProject(ctx, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (p *ProjectService) Delete(ctx context.Context, id int64) error {
	return p.store.DeleteProject(ctx, id)
}

func (p *ProjectService) ReplaceAll(ctx context.Context, projects []models.Project) error {
	now := time.Now().UTC()
	for i := range projects {
		if err := normalizeProject(&projects[i]); err != nil {
			return fmt.Errorf("project %d: %w", projects[i].ID, err)
		}
		projects[i].UpdatedAt = now
		if projects[i].CreatedAt.IsZero() {
			projects[i].CreatedAt = now
		}
	}
	return p.store.ReplaceAll(ctx, projects)
}

func (p *ProjectService) Stats(ctx context.Context, id int64) (api.StatsResponse, error) {
	project, err := p.Get(ctx, id)
	if err != nil {
		return api.StatsResponse{}, err
	}
	return api.StatsResponse{
		ProjectID: project.ID,
		Stats:     hierarchy.ProjectStats(project),
	}, nil
}

func normalizeProject(project *models.Project) error {
	if project.Name == "" {
		return badRequestCode(fmt.Errorf("project name is required"), ErrCodeMissingRequired)
	}
	if len(project.Name) > maxProjectNameLength {
		return badRequest(fmt.Errorf("project name exceeds %d characters", maxProjectNameLength))
	}
	if project.ID < 0 {
		return badRequestCode(fmt.Errorf("project id must be positive"), ErrCodeInvalidID)
	}

	if project.Status == "" {
		project.Status = string(models.ProjectPlanning)
	}
	status, err := models.ParseProjectStatus(project.Status)
	if err != nil {
		return badRequestCode(err, ErrCodeInvalidStatus)
	}
	project.Status = string(status)

	migrated, _ := models.MigrateItems(project.Items)
	project.Items = migrated
	if err := validateItems(project.Items); err != nil {
		return err
	}
	return nil
}

func validateItems(items []models.WorkItem) error {
	for i := range items {
		item := &items[i]
		if _, err := models.ParseItemStatus(item.Status); err != nil {
			return badRequestCode(fmt.Errorf("item %d: %w", item.ID, err), ErrCodeInvalidStatus)
		}
		if _, err := models.ParseItemType(item.Type); err != nil {
			return badRequestCode(fmt.Errorf("item %d: %w", item.ID, err), ErrCodeInvalidType)
		}
		if item.Priority != "" {
			if _, err := models.ParsePriority(item.Priority); err != nil {
				return badRequestCode(fmt.Errorf("item %d: %w", item.ID, err), ErrCodeInvalidPriority)
			}
		}
	}
	if err := hierarchy.ValidateForest(items); err != nil {
		return badRequestCode(err, ErrCodeInvalidItems)
	}
	return nil
}
