package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/university/admin-system/internal/core/domain"
)

const collectionCourses = "courses"

type CourseRepository struct {
	col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{col: db.Collection(collectionCourses)}
}

type courseDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"nom_cours"`
	Room       string             `bson:"salle"`
	Instructor string             `bson:"professeur"`
	Day        string             `bson:"jour"`
	StartTime  string             `bson:"heure_debut"`
	EndTime    string             `bson:"heure_fin"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toCourseDoc(c))
	if err != nil {
		return nil, fmt.Errorf("insert course: %w", err)
	}

	created := *c
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc courseDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return fromCourseDoc(&doc), nil
}

func (r *CourseRepository) List(ctx context.Context) ([]*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer cur.Close(ctx)

	courses := make([]*domain.Course, 0)
	for cur.Next(ctx) {
		var doc courseDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode course: %w", err)
		}
		courses = append(courses, fromCourseDoc(&doc))
	}
	return courses, cur.Err()
}

func (r *CourseRepository) Update(ctx context.Context, id string, c *domain.Course) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"nom_cours":   c.Name,
		"salle":       c.Room,
		"professeur":  c.Instructor,
		"jour":        c.Day,
		"heure_debut": c.StartTime,
		"heure_fin":   c.EndTime,
		"updated_at":  c.UpdatedAt,
	}}

	var doc courseDoc
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("update course: %w", err)
	}
	return fromCourseDoc(&doc), nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCourseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

func toCourseDoc(c *domain.Course) courseDoc {
	return courseDoc{
		Name:       c.Name,
		Room:       c.Room,
		Instructor: c.Instructor,
		Day:        c.Day,
		StartTime:  c.StartTime,
		EndTime:    c.EndTime,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func fromCourseDoc(doc *courseDoc) *domain.Course {
	return &domain.Course{
		ID:         doc.ID.Hex(),
		Name:       doc.Name,
		Room:       doc.Room,
		Instructor: doc.Instructor,
		Day:        doc.Day,
		StartTime:  doc.StartTime,
		EndTime:    doc.EndTime,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}
