package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConfigurationType discriminates what a configuration entry configures.
type ConfigurationType string

const (
	ConfigExchangeRate ConfigurationType = "exchange_rate"
	ConfigMargin       ConfigurationType = "margin"
	ConfigFixedCost    ConfigurationType = "fixed_cost"
)

// Configuration is one user-editable named value, e.g. the EUR exchange rate
// or the recommended margin. Unique per (user, type, name).
type Configuration struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	Value       float64            `bson:"value" json:"value"`
	Type        ConfigurationType  `bson:"type" json:"type"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
