package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a trader account. PasswordHash never leaves the backend.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Location     string             `bson:"location,omitempty" json:"location,omitempty"`
	Active       bool               `bson:"active" json:"active"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}
