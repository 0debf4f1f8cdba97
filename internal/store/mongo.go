package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush/postboard/backend/internal/models"
)

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserName  string             `bson:"userName"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *userDoc) model() *models.User {
	return &models.User{
		ID:           d.ID.Hex(),
		UserName:     d.UserName,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
	}
}

type postDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	Content   string             `bson:"content"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// MongoStore keeps users and posts in two MongoDB collections.
type MongoStore struct {
	client *mongo.Client
	users  *mongo.Collection
	posts  *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		client: db.Client(),
		users:  db.Collection("users"),
		posts:  db.Collection("posts"),
	}
}

// ConnectMongo dials uri, pings it and makes sure the indexes exist.
func ConnectMongo(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	s := NewMongoStore(client.Database(dbName))
	if err := s.EnsureIndexes(ctx); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// EnsureIndexes creates the unique email index and the posts-by-author index.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("mongo users index: %w", err)
	}
	_, err = s.posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("mongo posts index: %w", err)
	}
	return nil
}

func (s *MongoStore) CreateUser(ctx context.Context, u *models.User) error {
	doc := userDoc{
		UserName:  u.UserName,
		Email:     u.Email,
		Password:  u.PasswordHash,
		CreatedAt: time.Now().UTC(),
	}
	res, err := s.users.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("mongo insert user: %w", err)
	}
	u.ID = res.InsertedID.(primitive.ObjectID).Hex()
	u.CreatedAt = doc.CreatedAt
	return nil
}

func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *MongoStore) FindUserByIDAndEmail(ctx context.Context, id, email string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.findUser(ctx, bson.M{"_id": oid, "email": email})
}

func (s *MongoStore) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDoc
	err := s.users.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find user: %w", err)
	}
	return doc.model(), nil
}

func (s *MongoStore) CreatePost(ctx context.Context, p *models.Post) error {
	uid, err := primitive.ObjectIDFromHex(p.UserID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}
	res, err := s.posts.InsertOne(ctx, postDoc{
		UserID:    uid,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("mongo insert post: %w", err)
	}
	p.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
