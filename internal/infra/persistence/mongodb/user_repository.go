package mongodb

import (
	"context"
	"log/slog"
	"time"

	"passport/internal/domain/entity"
	"passport/internal/domain/repository"
	"passport/internal/errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

const usersCollection = "users"

// userDocument is the persistence model for a user. The UUID is stored as its
// string form in _id so the domain never sees Mongo object IDs.
type userDocument struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	Role         string    `bson:"role"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

// RepoParams defines the dependencies for the user repository.
type RepoParams struct {
	fx.In

	Database *mongo.Database
	Logger   *slog.Logger
}

type userRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewUserRepository is the constructor for the MongoDB-backed UserRepository.
// It ensures the unique index on email that backs duplicate detection. The
// duplicate-key mapping in Create depends on that index, so a failed index
// build aborts startup instead of degrading silently.
func NewUserRepository(params RepoParams) (repository.UserRepository, error) {
	collection := params.Database.Collection(usersCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		return nil, errors.Wrap(err, "failed to create unique index on email")
	}

	return &userRepository{
		collection: collection,
		logger:     params.Logger,
	}, nil
}

// Create persists a new user and fills in its generated ID.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	doc := toDocument(user)
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Wrap(repository.ErrEmailTaken, "insert user")
		}

		return errors.Wrap(err, "failed to insert user")
	}

	return nil
}

// FindByEmail retrieves a single user by email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByID retrieves a single user by ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.Wrap(repository.ErrUserNotFound, "find user")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return toEntity(&doc)
}

func toDocument(user *entity.User) *userDocument {
	return &userDocument{
		ID:           user.ID.String(),
		Email:        user.Email,
		Role:         user.Role.String(),
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func toEntity(doc *userDocument) (*entity.User, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt user id %q", doc.ID)
	}

	return &entity.User{
		ID:           id,
		Email:        doc.Email,
		Role:         entity.RoleFromString(doc.Role),
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}
