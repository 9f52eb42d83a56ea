package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/shop/backend/internal/domain/identity"
	"github.com/shop/backend/internal/domain/shared"
)

// UserService handles administrative user management
type UserService struct {
	userRepo identity.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List returns a paginated list of users matching the filter
func (s *UserService) List(ctx context.Context, filter UserListFilter) (*shared.Paginated[UserResponse], error) {
	sharedFilter := filter.ToSharedFilter()

	users, err := s.userRepo.FindAll(ctx, sharedFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx, sharedFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToUserResponses(users), total, sharedFilter.Page, sharedFilter.PageSize)
	return &result, nil
}

// Get returns a user by ID
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// Update applies an administrative update to a user
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if existing, err := s.userRepo.FindByEmail(ctx, *req.Email); err == nil && existing.ID != user.ID {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
		} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if err := user.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.Role != nil {
		if err := user.SetRole(*req.Role); err != nil {
			return nil, err
		}
	}

	fullName := user.FullName
	if req.FullName != nil {
		fullName = *req.FullName
	}
	address := user.Address
	if req.Address != nil {
		address = *req.Address
	}
	phone := user.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	user.UpdateProfile(fullName, address, phone)

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete removes a user
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.userRepo.Delete(ctx, id)
}
