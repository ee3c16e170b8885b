package service

import (
	"meetbook-api/model"
	"meetbook-api/repository"
)

// UserService handles user-related business logic.
type UserService struct {
	userRepo repository.IUserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.IUserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile returns a user's public profile, without the password hash.
func (s *UserService) GetProfile(userID int) (*model.User, error) {
	return s.userRepo.GetUserByID(userID)
}

// ListUsers returns every registered user, for the invitee picker.
func (s *UserService) ListUsers() ([]*model.User, error) {
	return s.userRepo.GetAllUsers()
}
