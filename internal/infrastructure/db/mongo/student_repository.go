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

const collectionStudents = "students"

type StudentRepository struct {
	col *mongo.Collection
}

func NewStudentRepository(db *mongo.Database) *StudentRepository {
	return &StudentRepository{col: db.Collection(collectionStudents)}
}

type studentDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	LastName  string             `bson:"nom"`
	FirstName string             `bson:"prenom"`
	CIN       string             `bson:"cin"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"telephone"`
	Level     string             `bson:"niveau"`
	Gender    string             `bson:"genre"`
	BirthDate string             `bson:"date_de_naissance"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (r *StudentRepository) Create(ctx context.Context, s *domain.Student) (*domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toStudentDoc(s))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateStudent
		}
		return nil, fmt.Errorf("insert student: %w", err)
	}

	created := *s
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *StudentRepository) FindByID(ctx context.Context, id string) (*domain.Student, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStudentNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *StudentRepository) FindByCIN(ctx context.Context, cin string) (*domain.Student, error) {
	return r.findOne(ctx, bson.M{"cin": cin})
}

// List returns all students ordered by creation time, oldest first.
func (r *StudentRepository) List(ctx context.Context) ([]*domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer cur.Close(ctx)

	students := make([]*domain.Student, 0)
	for cur.Next(ctx) {
		var doc studentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode student: %w", err)
		}
		students = append(students, fromStudentDoc(&doc))
	}
	return students, cur.Err()
}

func (r *StudentRepository) Update(ctx context.Context, id string, s *domain.Student) (*domain.Student, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStudentNotFound
	}
	return r.updateOne(ctx, bson.M{"_id": oid}, s)
}

func (r *StudentRepository) UpdateByCIN(ctx context.Context, cin string, s *domain.Student) (*domain.Student, error) {
	return r.updateOne(ctx, bson.M{"cin": cin}, s)
}

func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrStudentNotFound
	}
	return r.deleteOne(ctx, bson.M{"_id": oid})
}

func (r *StudentRepository) DeleteByCIN(ctx context.Context, cin string) error {
	return r.deleteOne(ctx, bson.M{"cin": cin})
}

// EnsureIndexes creates the unique indexes on cin and email.
func (r *StudentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "cin", Value: 1}}, Options: uniqueIndex()},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: uniqueIndex()},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *StudentRepository) findOne(ctx context.Context, filter bson.M) (*domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc studentDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return fromStudentDoc(&doc), nil
}

func (r *StudentRepository) updateOne(ctx context.Context, filter bson.M, s *domain.Student) (*domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"nom":               s.LastName,
		"prenom":            s.FirstName,
		"cin":               s.CIN,
		"email":             s.Email,
		"telephone":         s.Phone,
		"niveau":            s.Level,
		"genre":             s.Gender,
		"date_de_naissance": s.BirthDate,
		"updated_at":        s.UpdatedAt,
	}}

	var doc studentDoc
	err := r.col.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStudentNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateStudent
		}
		return nil, fmt.Errorf("update student: %w", err)
	}
	return fromStudentDoc(&doc), nil
}

func (r *StudentRepository) deleteOne(ctx context.Context, filter bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrStudentNotFound
	}
	return nil
}

func toStudentDoc(s *domain.Student) studentDoc {
	return studentDoc{
		LastName:  s.LastName,
		FirstName: s.FirstName,
		CIN:       s.CIN,
		Email:     s.Email,
		Phone:     s.Phone,
		Level:     s.Level,
		Gender:    s.Gender,
		BirthDate: s.BirthDate,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func fromStudentDoc(doc *studentDoc) *domain.Student {
	return &domain.Student{
		ID:        doc.ID.Hex(),
		LastName:  doc.LastName,
		FirstName: doc.FirstName,
		CIN:       doc.CIN,
		Email:     doc.Email,
		Phone:     doc.Phone,
		Level:     doc.Level,
		Gender:    doc.Gender,
		BirthDate: doc.BirthDate,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
