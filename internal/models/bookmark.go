package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bookmark links a user to a saved post. The collection carries a unique
// compound index on (userId, postId), so a pair can exist at most once and
// concurrent double-adds resolve to a single document.
type Bookmark struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	PostID    primitive.ObjectID `bson:"postId" json:"postId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
