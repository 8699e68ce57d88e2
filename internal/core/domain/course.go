package domain

import "time"

// Course is a scheduled university course. Instructor is free text, not a
// reference to a user record.
type Course struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	Name       string    `json:"nomCours" bson:"nom_cours"`
	Room       string    `json:"salle" bson:"salle"`
	Instructor string    `json:"professeur" bson:"professeur"`
	Day        string    `json:"jour" bson:"jour"`
	StartTime  string    `json:"heureDebut" bson:"heure_debut"`
	EndTime    string    `json:"heureFin" bson:"heure_fin"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updated_at"`
}
