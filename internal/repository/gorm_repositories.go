package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"

	"github.com/tasktrack/tasktrack-api/internal/models"
	"github.com/tasktrack/tasktrack-api/internal/query"
)

// NewGormRepositories builds every repository over one SQL database.
func NewGormRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:    NewGormUserRepository(db),
		Projects: NewGormProjectRepository(db),
		Tasks:    NewGormTaskRepository(db),
	}
}

func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	return err
}

type assigneeScan struct {
	OwnerID string
	UserID  string
}

// loadAssignees returns the ordered array values of each owner.
func loadAssignees(db *gorm.DB, jt joinTable, ownerIDs []string) (map[string][]string, error) {
	out := make(map[string][]string, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}

	var rows []assigneeScan
	err := db.Table(jt.table).
		Select(jt.ownerKey+" AS owner_id, "+jt.valueKey+" AS user_id").
		Where(jt.ownerKey+" IN ?", ownerIDs).
		Order("position").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.OwnerID] = append(out[row.OwnerID], row.UserID)
	}
	return out, nil
}

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Count(ctx context.Context, filter query.Filter) (int64, error) {
	var total int64
	err := userSchema.where(r.db.WithContext(ctx).Model(&userRow{}), filter).Count(&total).Error
	return total, err
}

func (r *GormUserRepository) Find(ctx context.Context, filter query.Filter, sort query.Sort, window query.Window) ([]models.User, error) {
	q := userSchema.where(r.db.WithContext(ctx).Model(&userRow{}), filter)
	var rows []userRow
	if err := userSchema.order(q, sort, window).Find(&rows).Error; err != nil {
		return nil, err
	}
	return userModels(rows), nil
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	row := newUserRow(user)
	return translateWriteError(r.db.WithContext(ctx).Create(&row).Error)
}

func (r *GormUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id.Hex()))
}

func (r *GormUserRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	var rows []userRow
	if err := r.db.WithContext(ctx).Where("id IN ?", hexIDs(ids)).Find(&rows).Error; err != nil {
		return nil, err
	}
	return userModels(rows), nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(r.db.WithContext(ctx).Where("email = ?", email))
}

func (r *GormUserRepository) Update(ctx context.Context, user *models.User) (bool, error) {
	row := newUserRow(user)
	res := r.db.WithContext(ctx).
		Model(&userRow{ID: row.ID}).
		Select("*").
		Omit("id", "created_at").
		Updates(&row)
	if res.Error != nil {
		return false, translateWriteError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GormUserRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&userRow{}, "id = ?", id.Hex())
	return res.RowsAffected > 0, res.Error
}

func (r *GormUserRepository) first(q *gorm.DB) (*models.User, error) {
	var row userRow
	if err := q.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	user := row.model()
	return &user, nil
}

func userModels(rows []userRow) []models.User {
	users := make([]models.User, len(rows))
	for i, row := range rows {
		users[i] = row.model()
	}
	return users
}

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

func NewGormProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

func (r *GormProjectRepository) Count(ctx context.Context, filter query.Filter) (int64, error) {
	var total int64
	err := projectSchema.where(r.db.WithContext(ctx).Model(&projectRow{}), filter).Count(&total).Error
	return total, err
}

func (r *GormProjectRepository) Find(ctx context.Context, filter query.Filter, sort query.Sort, window query.Window) ([]models.Project, error) {
	db := r.db.WithContext(ctx)
	q := projectSchema.where(db.Model(&projectRow{}), filter)
	var rows []projectRow
	if err := projectSchema.order(q, sort, window).Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.withAssignees(db, rows)
}

func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	row := newProjectRow(project)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return translateWriteError(err)
		}
		return replaceProjectAssignees(tx, row.ID, project.AssignedUsers)
	})
}

func (r *GormProjectRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	db := r.db.WithContext(ctx)
	var row projectRow
	if err := db.Where("id = ?", id.Hex()).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	projects, err := r.withAssignees(db, []projectRow{row})
	if err != nil {
		return nil, err
	}
	return &projects[0], nil
}

func (r *GormProjectRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Project, error) {
	if len(ids) == 0 {
		return []models.Project{}, nil
	}
	db := r.db.WithContext(ctx)
	var rows []projectRow
	if err := db.Where("id IN ?", hexIDs(ids)).Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.withAssignees(db, rows)
}

func (r *GormProjectRepository) Update(ctx context.Context, project *models.Project) (bool, error) {
	row := newProjectRow(project)
	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&projectRow{ID: row.ID}).Select("*").Omit("id", "created_at").Updates(&row)
		if res.Error != nil {
			return translateWriteError(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}
		found = true
		return replaceProjectAssignees(tx, row.ID, project.AssignedUsers)
	})
	return found, err
}

func (r *GormProjectRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id.Hex()).Delete(&projectAssigneeRow{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&projectRow{}, "id = ?", id.Hex())
		found = res.RowsAffected > 0
		return res.Error
	})
	return found, err
}

func (r *GormProjectRepository) withAssignees(db *gorm.DB, rows []projectRow) ([]models.Project, error) {
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	assignees, err := loadAssignees(db, projectSchema.arrays[models.ProjectFieldAssignedUsers], ids)
	if err != nil {
		return nil, err
	}

	projects := make([]models.Project, len(rows))
	for i, row := range rows {
		projects[i] = row.model(orEmpty(assignees[row.ID]))
	}
	return projects, nil
}

func replaceProjectAssignees(tx *gorm.DB, projectID string, userIDs []string) error {
	if err := tx.Where("project_id = ?", projectID).Delete(&projectAssigneeRow{}).Error; err != nil {
		return err
	}
	rows := make([]projectAssigneeRow, 0, len(userIDs))
	for i, userID := range dedupe(userIDs) {
		rows = append(rows, projectAssigneeRow{ProjectID: projectID, UserID: userID, Position: i})
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

func (r *GormTaskRepository) Count(ctx context.Context, filter query.Filter) (int64, error) {
	var total int64
	err := taskSchema.where(r.db.WithContext(ctx).Model(&taskRow{}), filter).Count(&total).Error
	return total, err
}

func (r *GormTaskRepository) Find(ctx context.Context, filter query.Filter, sort query.Sort, window query.Window) ([]models.Task, error) {
	db := r.db.WithContext(ctx)
	q := taskSchema.where(db.Model(&taskRow{}), filter)
	var rows []taskRow
	if err := taskSchema.order(q, sort, window).Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.withAssignees(db, rows)
}

func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	*task = models.ReconcileTask(*task)
	row := newTaskRow(task)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return translateWriteError(err)
		}
		return replaceTaskAssignees(tx, row.ID, task.AssignedUsers)
	})
}

func (r *GormTaskRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	db := r.db.WithContext(ctx)
	var row taskRow
	if err := db.Where("id = ?", id.Hex()).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	tasks, err := r.withAssignees(db, []taskRow{row})
	if err != nil {
		return nil, err
	}
	return &tasks[0], nil
}

func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) (bool, error) {
	*task = models.ReconcileTask(*task)
	row := newTaskRow(task)
	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&taskRow{ID: row.ID}).Select("*").Omit("id", "created_at").Updates(&row)
		if res.Error != nil {
			return translateWriteError(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}
		found = true
		return replaceTaskAssignees(tx, row.ID, task.AssignedUsers)
	})
	return found, err
}

func (r *GormTaskRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id.Hex()).Delete(&taskAssigneeRow{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&taskRow{}, "id = ?", id.Hex())
		found = res.RowsAffected > 0
		return res.Error
	})
	return found, err
}

func (r *GormTaskRepository) DeleteByProjectID(ctx context.Context, projectID string) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&taskRow{}).Select("id").Where("project_id = ?", projectID)
		if err := tx.Where("task_id IN (?)", owned).Delete(&taskAssigneeRow{}).Error; err != nil {
			return err
		}
		res := tx.Where("project_id = ?", projectID).Delete(&taskRow{})
		removed = res.RowsAffected
		return res.Error
	})
	return removed, err
}

func (r *GormTaskRepository) withAssignees(db *gorm.DB, rows []taskRow) ([]models.Task, error) {
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	assignees, err := loadAssignees(db, taskSchema.arrays[models.TaskFieldAssignedUsers], ids)
	if err != nil {
		return nil, err
	}

	tasks := make([]models.Task, len(rows))
	for i, row := range rows {
		tasks[i] = models.ReconcileTask(row.model(orEmpty(assignees[row.ID])))
	}
	return tasks, nil
}

func replaceTaskAssignees(tx *gorm.DB, taskID string, userIDs []string) error {
	if err := tx.Where("task_id = ?", taskID).Delete(&taskAssigneeRow{}).Error; err != nil {
		return err
	}
	rows := make([]taskAssigneeRow, 0, len(userIDs))
	for i, userID := range dedupe(userIDs) {
		rows = append(rows, taskAssigneeRow{TaskID: taskID, UserID: userID, Position: i})
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// dedupe drops empty and repeated ids, keeping first occurrences in order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
