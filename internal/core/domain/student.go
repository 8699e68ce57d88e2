package domain

import "time"

// Student is a university student record. JSON field names follow the wire
// format consumed by the dashboard (the original French schema).
type Student struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	LastName  string    `json:"nom" bson:"nom"`
	FirstName string    `json:"prenom" bson:"prenom"`
	CIN       string    `json:"cin" bson:"cin"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"telephone" bson:"telephone"`
	Level     string    `json:"niveau" bson:"niveau"`
	Gender    string    `json:"genre" bson:"genre"`
	BirthDate string    `json:"dateDeNaissance" bson:"date_de_naissance"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}
