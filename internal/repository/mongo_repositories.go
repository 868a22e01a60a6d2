package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tasktrack/tasktrack-api/internal/database"
	"github.com/tasktrack/tasktrack-api/internal/models"
	"github.com/tasktrack/tasktrack-api/internal/query"
)

// NewMongoRepositories builds every repository over one database.
func NewMongoRepositories(db *mongo.Database) Repositories {
	return Repositories{
		Users:    NewMongoUserRepository(db),
		Projects: NewMongoProjectRepository(db),
		Tasks:    NewMongoTaskRepository(db),
	}
}

// MongoUserRepository is a MongoDB implementation of UserRepository
type MongoUserRepository struct {
	mongoStore[models.User]
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &MongoUserRepository{mongoStore[models.User]{coll: db.Collection(database.CollectionUsers)}}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	return r.insert(ctx, user)
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, objectIDFilter(id))
}

func (r *MongoUserRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	return r.findByIDs(ctx, ids)
}

// FindByEmail expects an already normalized email.
func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.D{{Key: models.UserFieldEmail, Value: email}})
}

func (r *MongoUserRepository) Update(ctx context.Context, user *models.User) (bool, error) {
	return r.replace(ctx, user.ID, user)
}

func (r *MongoUserRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return r.delete(ctx, id)
}

// MongoProjectRepository is a MongoDB implementation of ProjectRepository
type MongoProjectRepository struct {
	mongoStore[models.Project]
}

func NewMongoProjectRepository(db *mongo.Database) ProjectRepository {
	return &MongoProjectRepository{mongoStore[models.Project]{coll: db.Collection(database.CollectionProjects)}}
}

func (r *MongoProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	return r.insert(ctx, project)
}

func (r *MongoProjectRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	return r.findOne(ctx, objectIDFilter(id))
}

func (r *MongoProjectRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Project, error) {
	return r.findByIDs(ctx, ids)
}

func (r *MongoProjectRepository) Update(ctx context.Context, project *models.Project) (bool, error) {
	return r.replace(ctx, project.ID, project)
}

func (r *MongoProjectRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return r.delete(ctx, id)
}

// MongoTaskRepository is a MongoDB implementation of TaskRepository
type MongoTaskRepository struct {
	mongoStore[models.Task]
}

func NewMongoTaskRepository(db *mongo.Database) TaskRepository {
	return &MongoTaskRepository{mongoStore[models.Task]{coll: db.Collection(database.CollectionTasks)}}
}

func (r *MongoTaskRepository) Find(ctx context.Context, filter query.Filter, sort query.Sort, window query.Window) ([]models.Task, error) {
	tasks, err := r.mongoStore.Find(ctx, filter, sort, window)
	if err != nil {
		return nil, err
	}
	return reconcileAll(tasks), nil
}

func (r *MongoTaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	*task = models.ReconcileTask(*task)
	return r.insert(ctx, task)
}

func (r *MongoTaskRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	task, err := r.findOne(ctx, objectIDFilter(id))
	if err != nil || task == nil {
		return nil, err
	}
	reconciled := models.ReconcileTask(*task)
	return &reconciled, nil
}

func (r *MongoTaskRepository) Update(ctx context.Context, task *models.Task) (bool, error) {
	*task = models.ReconcileTask(*task)
	return r.replace(ctx, task.ID, task)
}

func (r *MongoTaskRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return r.delete(ctx, id)
}

func (r *MongoTaskRepository) DeleteByProjectID(ctx context.Context, projectID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{{Key: models.TaskFieldProjectID, Value: projectID}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
