package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/shared/errors"
)

// UsersCollection — имя коллекции пользователей в MongoDB.
const UsersCollection = "users"

// userDocument — вид пользователя в коллекции.
type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt,omitempty"`
	UpdatedAt    time.Time          `bson:"updatedAt,omitempty"`
}

func (d userDocument) toModel() models.User {
	return models.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// проекции: хэш пароля выбираем только там, где он нужен
var (
	profileProjection  = bson.D{{Key: "name", Value: 1}, {Key: "email", Value: 1}}
	passwordProjection = bson.D{{Key: "password", Value: 1}}
)

// MongoUsersRepository хранит пользователей в документной базе MongoDB.
//
// Уникальность email держит уникальный индекс (EnsureIndexes), ошибка
// duplicate key маппится в ErrAlreadyExists.
type MongoUsersRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoUsersRepository создаёт репозиторий поверх коллекции пользователей.
func NewMongoUsersRepository(coll *mongo.Collection) *MongoUsersRepository {
	return &MongoUsersRepository{coll: coll, now: time.Now}
}

// EnsureIndexes создаёт уникальный индекс по email. Вызывается при старте.
func (r *MongoUsersRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_key"),
	})
	if err != nil {
		return internal("create email index", err)
	}
	return nil
}

func (r *MongoUsersRepository) Create(ctx context.Context, name, email, passwordHash string) (models.User, error) {
	now := r.now().UTC()
	doc := userDocument{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, serr.ErrAlreadyExists
		}
		return models.User{}, internal("insert user", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return models.User{}, internal("insert user", errors.New("unexpected inserted id type"))
	}
	doc.ID = oid
	doc.PasswordHash = ""
	return doc.toModel(), nil
}

func (r *MongoUsersRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc)
	if err != nil {
		return models.User{}, mongoReadError("find user by email", err)
	}
	return doc.toModel(), nil
}

func (r *MongoUsersRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, serr.ErrNotFound
	}

	var doc userDocument
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}},
		options.FindOne().SetProjection(profileProjection),
	).Decode(&doc)
	if err != nil {
		return models.User{}, mongoReadError("find user by id", err)
	}
	return doc.toModel(), nil
}

func (r *MongoUsersRepository) GetPasswordHash(ctx context.Context, id string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return "", serr.ErrNotFound
	}

	var doc userDocument
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}},
		options.FindOne().SetProjection(passwordProjection),
	).Decode(&doc)
	if err != nil {
		return "", mongoReadError("find password hash", err)
	}
	return doc.PasswordHash, nil
}

func (r *MongoUsersRepository) EmailTakenByOther(ctx context.Context, email, excludeID string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(excludeID)
	if err != nil {
		return false, serr.ErrNotFound
	}

	n, err := r.coll.CountDocuments(ctx,
		bson.D{
			{Key: "email", Value: email},
			{Key: "_id", Value: bson.D{{Key: "$ne", Value: oid}}},
		},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, internal("check email", err)
	}
	return n > 0, nil
}

func (r *MongoUsersRepository) UpdateProfile(ctx context.Context, id, name, email string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, serr.ErrNotFound
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: name},
		{Key: "email", Value: email},
		{Key: "updatedAt", Value: r.now().UTC()},
	}}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(profileProjection)

	var doc userDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, opts).Decode(&doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, serr.ErrAlreadyExists
		}
		return models.User{}, mongoReadError("update profile", err)
	}
	return doc.toModel(), nil
}

func (r *MongoUsersRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return serr.ErrNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "password", Value: passwordHash},
			{Key: "updatedAt", Value: r.now().UTC()},
		}}},
	)
	if err != nil {
		return internal("update password", err)
	}
	if res.MatchedCount == 0 {
		return serr.ErrNotFound
	}
	return nil
}

func mongoReadError(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return serr.ErrNotFound
	}
	return internal(op, err)
}
