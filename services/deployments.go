package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/baptisteba/PassChef/constants"
	"github.com/baptisteba/PassChef/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeploymentService interface {
	ListBySite(ctx context.Context, siteID uuid.UUID) ([]models.WifiDeployment, error)
	Get(ctx context.Context, id uuid.UUID) (*models.WifiDeployment, error)
	Create(ctx context.Context, actor Actor, siteID uuid.UUID, req *models.CreateDeploymentRequest) (*models.WifiDeployment, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, req *models.UpdateDeploymentRequest) (*models.WifiDeployment, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	Archive(ctx context.Context, actor Actor, id uuid.UUID) error
	ListArchivedBySite(ctx context.Context, siteID uuid.UUID) ([]models.ArchivedWifiDeployment, error)

	ListComments(ctx context.Context, id uuid.UUID) ([]models.DeploymentComment, error)
	AddComment(ctx context.Context, actor Actor, id uuid.UUID, req *models.DeploymentCommentRequest) (*models.DeploymentComment, error)

	ListTasks(ctx context.Context, id uuid.UUID) ([]models.DeploymentTask, error)
	AddTask(ctx context.Context, actor Actor, id uuid.UUID, req *models.CreateTaskRequest) (*models.DeploymentTask, error)
	UpdateTask(ctx context.Context, actor Actor, id, taskID uuid.UUID, req *models.UpdateTaskRequest) (*models.DeploymentTask, error)
	DeleteTask(ctx context.Context, actor Actor, id, taskID uuid.UUID) error
}

type deploymentService struct {
	db *gorm.DB
}

func NewDeploymentService(db *gorm.DB) DeploymentService {
	return &deploymentService{db: db}
}

func (s *deploymentService) ListBySite(ctx context.Context, siteID uuid.UUID) ([]models.WifiDeployment, error) {
	db := s.db.WithContext(ctx)

	if _, err := siteExists(db, siteID); err != nil {
		return nil, err
	}

	var deployments []models.WifiDeployment
	err := db.Where("site_id = ?", siteID).Order("created_at desc").Find(&deployments).Error
	if err != nil {
		return nil, err
	}
	return deployments, nil
}

func (s *deploymentService) Get(ctx context.Context, id uuid.UUID) (*models.WifiDeployment, error) {
	db := s.db.WithContext(ctx)

	deployment, err := getDeployment(db, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.ListComments(ctx, id)
	if err != nil {
		return nil, err
	}
	tasks, err := s.ListTasks(ctx, id)
	if err != nil {
		return nil, err
	}
	deployment.Comments = comments
	deployment.Tasks = tasks

	return deployment, nil
}

func getDeployment(db *gorm.DB, id uuid.UUID) (*models.WifiDeployment, error) {
	var deployment models.WifiDeployment
	if err := db.First(&deployment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("deployment %w", ErrNotFound)
		}
		return nil, err
	}
	return &deployment, nil
}

func (s *deploymentService) Create(ctx context.Context, actor Actor, siteID uuid.UUID, req *models.CreateDeploymentRequest) (*models.WifiDeployment, error) {
	db := s.db.WithContext(ctx)

	site, err := authorizeSiteWrite(db, actor, siteID)
	if err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	status := req.Status
	if status == "" {
		status = constants.DeploymentPlanning
	}

	now := time.Now()
	deployment := models.WifiDeployment{
		ID:        uuid.New(),
		SiteID:    siteID,
		Name:      req.Name,
		Status:    status,
		Notes:     req.Notes,
		CreatedBy: actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// Created straight into in_progress: the rollout starts now.
	if status == constants.DeploymentInProgress {
		deployment.StartDate = &now
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&deployment).Error; err != nil {
			return err
		}
		details := fmt.Sprintf("WiFi deployment created: %s", deployment.Name)
		return appendSiteEvent(tx, site.ID, constants.EventWifiDeploymentCreated, actor.ID, details)
	})
	if err != nil {
		return nil, err
	}

	return &deployment, nil
}

// Update applies the lifecycle transition rules: entering in_progress stamps
// start_date only if unset, entering completed stamps completion_date only if
// unset. An explicit completion_date in the patch wins over the auto-stamp.
func (s *deploymentService) Update(ctx context.Context, actor Actor, id uuid.UUID, req *models.UpdateDeploymentRequest) (*models.WifiDeployment, error) {
	db := s.db.WithContext(ctx)

	deployment, err := getDeployment(db, id)
	if err != nil {
		return nil, err
	}
	if _, err := authorizeSiteWrite(db, actor, deployment.SiteID); err != nil {
		return nil, err
	}

	now := time.Now()
	if req.Name != nil {
		deployment.Name = *req.Name
	}
	if req.Status != nil {
		deployment.Status = *req.Status
		if deployment.Status == constants.DeploymentInProgress && deployment.StartDate == nil {
			deployment.StartDate = &now
		}
		if deployment.Status == constants.DeploymentCompleted && deployment.CompletionDate == nil {
			deployment.CompletionDate = &now
		}
	}
	if req.Notes != nil {
		deployment.Notes = *req.Notes
	}
	if req.CompletionDate != nil {
		deployment.CompletionDate = req.CompletionDate
	}
	deployment.UpdatedAt = now

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(deployment).Error; err != nil {
			return err
		}
		details := "WiFi deployment updated"
		if req.Status != nil {
			details = fmt.Sprintf("WiFi deployment status updated to %s", *req.Status)
		}
		return appendSiteEvent(tx, deployment.SiteID, constants.EventWifiDeploymentUpdated, actor.ID, details)
	})
	if err != nil {
		return nil, err
	}

	return deployment, nil
}

// Delete hard-deletes a live deployment. Restricted to the creator or an
// admin; archive is the non-destructive alternative.
func (s *deploymentService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	db := s.db.WithContext(ctx)

	deployment, err := getDeployment(db, id)
	if err != nil {
		return err
	}

	if deployment.CreatedBy != actor.ID && !actor.IsAdmin() {
		return fmt.Errorf("%w to delete this deployment", ErrForbidden)
	}
	if _, err := authorizeSiteWrite(db, actor, deployment.SiteID); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := deleteDeploymentRows(tx, id); err != nil {
			return err
		}
		details := fmt.Sprintf("WiFi deployment deleted: %s", deployment.Name)
		return appendSiteEvent(tx, deployment.SiteID, constants.EventWifiDeploymentDeleted, actor.ID, details)
	})
}

// Archive snapshots the deployment with every task and comment into the
// archive tables, then removes the live rows. One transaction, no restore.
func (s *deploymentService) Archive(ctx context.Context, actor Actor, id uuid.UUID) error {
	db := s.db.WithContext(ctx)

	deployment, err := getDeployment(db, id)
	if err != nil {
		return err
	}
	if _, err := authorizeSiteWrite(db, actor, deployment.SiteID); err != nil {
		return err
	}

	var comments []models.DeploymentComment
	if err := db.Where("deployment_id = ?", id).Find(&comments).Error; err != nil {
		return err
	}
	var tasks []models.DeploymentTask
	if err := db.Where("deployment_id = ?", id).Find(&tasks).Error; err != nil {
		return err
	}

	now := time.Now()
	archived := models.ArchivedWifiDeployment{
		ID:             deployment.ID,
		SiteID:         deployment.SiteID,
		Name:           deployment.Name,
		Status:         deployment.Status,
		StartDate:      deployment.StartDate,
		CompletionDate: deployment.CompletionDate,
		Notes:          deployment.Notes,
		CreatedBy:      deployment.CreatedBy,
		CreatedAt:      deployment.CreatedAt,
		UpdatedAt:      deployment.UpdatedAt,
		ArchivedAt:     now,
		ArchivedBy:     actor.ID,
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&archived).Error; err != nil {
			return err
		}
		for _, c := range comments {
			row := models.ArchivedDeploymentComment{
				ID:           c.ID,
				DeploymentID: archived.ID,
				Text:         c.Text,
				UserID:       c.UserID,
				Importance:   c.Importance,
				Timestamp:    c.Timestamp,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, t := range tasks {
			row := models.ArchivedDeploymentTask{
				ID:           t.ID,
				DeploymentID: archived.ID,
				Title:        t.Title,
				Description:  t.Description,
				Status:       t.Status,
				Priority:     t.Priority,
				AssignedTo:   t.AssignedTo,
				DueDate:      t.DueDate,
				CreatedBy:    t.CreatedBy,
				CreatedAt:    t.CreatedAt,
				UpdatedAt:    t.UpdatedAt,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		if err := deleteDeploymentRows(tx, id); err != nil {
			return err
		}

		return appendSiteEvent(tx, deployment.SiteID, constants.EventWifiDeploymentArchived, actor.ID, "WiFi deployment archived")
	})
}

func deleteDeploymentRows(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Where("deployment_id = ?", id).Delete(&models.DeploymentComment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("deployment_id = ?", id).Delete(&models.DeploymentTask{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.WifiDeployment{}, "id = ?", id).Error
}

func (s *deploymentService) ListArchivedBySite(ctx context.Context, siteID uuid.UUID) ([]models.ArchivedWifiDeployment, error) {
	db := s.db.WithContext(ctx)

	if _, err := siteExists(db, siteID); err != nil {
		return nil, err
	}

	var archived []models.ArchivedWifiDeployment
	err := db.
		Preload("Comments").
		Preload("Tasks").
		Where("site_id = ?", siteID).
		Order("archived_at desc").
		Find(&archived).Error
	if err != nil {
		return nil, err
	}
	return archived, nil
}

// ===============================
// Comments
// ===============================

// ListComments returns newest first, with author identities resolved.
func (s *deploymentService) ListComments(ctx context.Context, id uuid.UUID) ([]models.DeploymentComment, error) {
	db := s.db.WithContext(ctx)

	if _, err := getDeployment(db, id); err != nil {
		return nil, err
	}

	var comments []models.DeploymentComment
	if err := db.Where("deployment_id = ?", id).Order("timestamp desc").Find(&comments).Error; err != nil {
		return nil, err
	}

	if err := resolveCommentAuthors(db, comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *deploymentService) AddComment(ctx context.Context, actor Actor, id uuid.UUID, req *models.DeploymentCommentRequest) (*models.DeploymentComment, error) {
	db := s.db.WithContext(ctx)

	deployment, err := getDeployment(db, id)
	if err != nil {
		return nil, err
	}
	if _, err := authorizeSiteWrite(db, actor, deployment.SiteID); err != nil {
		return nil, err
	}

	if req.Text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrValidation)
	}
	importance := req.Importance
	if importance == "" {
		importance = constants.ImportanceInfo
	}

	comment := models.DeploymentComment{
		ID:           uuid.New(),
		DeploymentID: deployment.ID,
		Text:         req.Text,
		UserID:       actor.ID,
		Importance:   importance,
		Timestamp:    time.Now(),
	}
	if err := db.Create(&comment).Error; err != nil {
		return nil, err
	}

	comment.User = models.UserRef{ID: actor.ID, Name: actor.Name, Email: actor.Email}
	return &comment, nil
}

func resolveCommentAuthors(db *gorm.DB, comments []models.DeploymentComment) error {
	if len(comments) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.UserID)
	}

	var users []models.User
	if err := db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return err
	}
	refs := make(map[uuid.UUID]models.UserRef, len(users))
	for _, u := range users {
		refs[u.ID] = u.Ref()
	}
	for i := range comments {
		comments[i].User = refs[comments[i].UserID]
	}
	return nil
}

// ===============================
// Tasks
// ===============================

// ListTasks returns tasks in working order: completed last, overdue first,
// then by priority, earlier due date, newest created.
func (s *deploymentService) ListTasks(ctx context.Context, id uuid.UUID) ([]models.DeploymentTask, error) {
	db := s.db.WithContext(ctx)

	if _, err := getDeployment(db, id); err != nil {
		return nil, err
	}

	var tasks []models.DeploymentTask
	if err := db.Where("deployment_id = ?", id).Find(&tasks).Error; err != nil {
		return nil, err
	}

	SortTasks(tasks, time.Now())
	return tasks, nil
}

var priorityRank = map[string]int{
	constants.PriorityCritical: 0,
	constants.PriorityHigh:     1,
	constants.PriorityMedium:   2,
	constants.PriorityLow:      3,
}

// SortTasks orders a task list for display: incomplete before completed,
// overdue first among incomplete, then priority (critical highest), then
// earlier due date, tasks with a due date before those without, and finally
// newest created.
func SortTasks(tasks []models.DeploymentTask, now time.Time) {
	overdue := func(t models.DeploymentTask) bool {
		return t.Status != constants.TaskCompleted && t.DueDate != nil && t.DueDate.Before(now)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]

		aDone := a.Status == constants.TaskCompleted
		bDone := b.Status == constants.TaskCompleted
		if aDone != bDone {
			return !aDone
		}

		aOver := overdue(a)
		bOver := overdue(b)
		if aOver != bOver {
			return aOver
		}

		if priorityRank[a.Priority] != priorityRank[b.Priority] {
			return priorityRank[a.Priority] < priorityRank[b.Priority]
		}

		switch {
		case a.DueDate != nil && b.DueDate != nil:
			if !a.DueDate.Equal(*b.DueDate) {
				return a.DueDate.Before(*b.DueDate)
			}
		case a.DueDate != nil:
			return true
		case b.DueDate != nil:
			return false
		}

		return a.CreatedAt.After(b.CreatedAt)
	})
}

func (s *deploymentService) AddTask(ctx context.Context, actor Actor, id uuid.UUID, req *models.CreateTaskRequest) (*models.DeploymentTask, error) {
	db := s.db.WithContext(ctx)

	deployment, err := getDeployment(db, id)
	if err != nil {
		return nil, err
	}
	if _, err := authorizeSiteWrite(db, actor, deployment.SiteID); err != nil {
		return nil, err
	}

	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	status := req.Status
	if status == "" {
		status = constants.TaskNotStarted
	}
	priority := req.Priority
	if priority == "" {
		priority = constants.PriorityMedium
	}

	now := time.Now()
	task := models.DeploymentTask{
		ID:           uuid.New(),
		DeploymentID: deployment.ID,
		Title:        req.Title,
		Description:  req.Description,
		Status:       status,
		Priority:     priority,
		AssignedTo:   req.AssignedTo,
		DueDate:      req.DueDate,
		CreatedBy:    actor.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(&task).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// UpdateTask re-stamps the task's own updated_at but leaves the parent
// deployment untouched.
func (s *deploymentService) UpdateTask(ctx context.Context, actor Actor, id, taskID uuid.UUID, req *models.UpdateTaskRequest) (*models.DeploymentTask, error) {
	db := s.db.WithContext(ctx)

	task, deployment, err := getTask(db, id, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := authorizeSiteWrite(db, actor, deployment.SiteID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.AssignedTo != nil {
		task.AssignedTo = req.AssignedTo
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	task.UpdatedAt = time.Now()

	if err := db.Save(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func (s *deploymentService) DeleteTask(ctx context.Context, actor Actor, id, taskID uuid.UUID) error {
	db := s.db.WithContext(ctx)

	task, deployment, err := getTask(db, id, taskID)
	if err != nil {
		return err
	}
	if _, err := authorizeSiteWrite(db, actor, deployment.SiteID); err != nil {
		return err
	}

	return db.Delete(task).Error
}

func getTask(db *gorm.DB, deploymentID, taskID uuid.UUID) (*models.DeploymentTask, *models.WifiDeployment, error) {
	deployment, err := getDeployment(db, deploymentID)
	if err != nil {
		return nil, nil, err
	}

	var task models.DeploymentTask
	err = db.Where("id = ? AND deployment_id = ?", taskID, deploymentID).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("task %w", ErrNotFound)
		}
		return nil, nil, err
	}
	return &task, deployment, nil
}
