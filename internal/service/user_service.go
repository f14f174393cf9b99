package service

import (
	"context"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateUserInput struct {
	ActorID  primitive.ObjectID
	TargetID primitive.ObjectID
	Username string
	Password string
}

type ListUsersInput struct {
	StartIndex int64
	Limit      int64
	Ascending  bool
}

// UserPage mirrors PostPage for the admin user listing.
type UserPage struct {
	Users          []models.User `json:"users"`
	TotalUsers     int64         `json:"totalUsers"`
	LastMonthUsers int64         `json:"lastMonthUsers"`
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateUser lets a user change their own username and/or password. Other
// profile fields are not updatable through this path.
func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	if in.ActorID != in.TargetID {
		return nil, models.NewForbiddenError("You are not allowed to update this user")
	}

	set := bson.M{}
	if in.Password != "" {
		if err := validation.ValidatePassword(in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		set["password"] = string(hashed)
	}
	if in.Username != "" {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		set["username"] = in.Username
	}

	if len(set) == 0 {
		user, err := s.userRepo.GetByID(ctx, in.TargetID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, models.NewNotFoundError("User not found")
		}
		return user, nil
	}

	set["updatedAt"] = time.Now()
	user, err := s.userRepo.Update(ctx, in.TargetID, set)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User not found")
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, in ListUsersInput) (*UserPage, error) {
	users, err := s.userRepo.List(ctx, in.StartIndex, in.Limit, in.Ascending)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	lastMonth, err := s.userRepo.CountCreatedSince(ctx, monthAgo(time.Now()))
	if err != nil {
		return nil, err
	}

	return &UserPage{
		Users:          users,
		TotalUsers:     total,
		LastMonthUsers: lastMonth,
	}, nil
}

func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User not found")
	}
	return user, nil
}

// ToggleContributor flips the isContributor role flag.
func (s *UserService) ToggleContributor(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.toggleFlag(ctx, id, "isContributor", func(u *models.User) bool { return u.IsContributor })
}

// ToggleReq flips the isReq role flag.
func (s *UserService) ToggleReq(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.toggleFlag(ctx, id, "isReq", func(u *models.User) bool { return u.IsReq })
}

func (s *UserService) toggleFlag(ctx context.Context, id primitive.ObjectID, field string, current func(*models.User) bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User not found")
	}

	updated, err := s.userRepo.Update(ctx, id, bson.M{
		field:       !current(user),
		"updatedAt": time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, models.NewNotFoundError("User not found")
	}
	return updated, nil
}
