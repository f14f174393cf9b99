// Package models contains data structures for the application's domain documents.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a user account in the Inkwell platform.
// The password hash is stored in Mongo but is never serialized to JSON,
// so no response path can leak it.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`

	IsAdmin       bool `bson:"isAdmin" json:"isAdmin"`
	IsContributor bool `bson:"isContributor" json:"isContributor"`
	IsReq         bool `bson:"isReq" json:"isReq"`

	// Optional free-form profile fields.
	ProfilePicture string `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	FirstName      string `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName       string `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Number         string `bson:"number,omitempty" json:"number,omitempty"`
	DOB            string `bson:"dob,omitempty" json:"dob,omitempty"`
	Gender         string `bson:"gender,omitempty" json:"gender,omitempty"`
	Country        string `bson:"country,omitempty" json:"country,omitempty"`
	State          string `bson:"state,omitempty" json:"state,omitempty"`
	City           string `bson:"city,omitempty" json:"city,omitempty"`
	Pincode        string `bson:"pincode,omitempty" json:"pincode,omitempty"`
	Bio            string `bson:"bio,omitempty" json:"bio,omitempty"`
	Facebook       string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Twitter        string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Instagram      string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	LinkedIn       string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	InstituteName  string `bson:"instituteName,omitempty" json:"instituteName,omitempty"`
	Degree         string `bson:"degree,omitempty" json:"degree,omitempty"`
	FieldOfStudy   string `bson:"fieldOfStudy,omitempty" json:"fieldOfStudy,omitempty"`
	Position       string `bson:"position,omitempty" json:"position,omitempty"`
	CompanyName    string `bson:"companyName,omitempty" json:"companyName,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
