package services

import (
	"context"
	"fmt"

	"github.com/s/elearning/internal/apperr"
	"github.com/s/elearning/internal/cache"
	"github.com/s/elearning/internal/dto"
	"github.com/s/elearning/internal/logger"
	"github.com/s/elearning/internal/mapper"
	"github.com/s/elearning/internal/models"
	"github.com/s/elearning/internal/storage"
	"gorm.io/gorm"
)

const codeDuplicateEmail = "duplicate_email"

type UserService struct {
	st    *storage.Store
	cache cache.Cache
	log   *logger.Logger
}

func NewUserService(st *storage.Store, c cache.Cache, baseLog *logger.Logger) *UserService {
	return &UserService{st: st, cache: c, log: baseLog.With("service", "UserService")}
}

func (s *UserService) GetAll(ctx context.Context) ([]dto.User, error) {
	rows, err := s.st.Users.GetAllWithProfile(ctx, nil)
	if err != nil {
		return nil, err
	}
	return mapper.UsersToDTO(rows), nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (dto.User, error) {
	row, err := s.st.Users.GetWithProfile(ctx, nil, id)
	if err != nil {
		return dto.User{}, err
	}
	return mapper.UserToDTO(*row), nil
}

// Create stores the user and, when given, its profile in one transaction.
func (s *UserService) Create(ctx context.Context, in dto.User) (dto.User, error) {
	if err := validRole(in.Role); err != nil {
		return dto.User{}, err
	}
	row := mapper.UserToModel(in)
	row.ID = 0
	profile := row.Profile
	row.Profile = nil

	err := withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		taken, err := s.st.Users.EmailTaken(ctx, tx, row.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			return duplicateEmail(row.Email)
		}
		if err := s.st.Users.Create(ctx, tx, &row); err != nil {
			return err
		}
		if profile != nil {
			if err := s.st.Users.SaveProfile(ctx, tx, row.ID, profile); err != nil {
				return err
			}
			row.Profile = profile
		}
		return nil
	})
	if err != nil {
		return dto.User{}, asConflict(err, codeDuplicateEmail, "email already registered")
	}
	s.log.Debug("user created", "userID", row.ID, "email", row.Email)
	return mapper.UserToDTO(row), nil
}

// Update overwrites name, email and role. A supplied profile replaces the
// stored one; an absent profile leaves it untouched.
func (s *UserService) Update(ctx context.Context, id uint, in dto.User) (dto.User, error) {
	if err := validRole(in.Role); err != nil {
		return dto.User{}, err
	}
	var out models.User
	err := withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		row, err := s.st.Users.GetWithProfile(ctx, tx, id)
		if err != nil {
			return err
		}
		if in.Email != row.Email {
			taken, err := s.st.Users.EmailTaken(ctx, tx, in.Email, id)
			if err != nil {
				return err
			}
			if taken {
				return duplicateEmail(in.Email)
			}
		}
		row.Name = in.Name
		row.Email = in.Email
		row.Role = models.Role(in.Role)
		if err := s.st.Users.Save(ctx, tx, row); err != nil {
			return err
		}
		if in.Profile != nil {
			p := &models.Profile{Bio: in.Profile.Bio, AvatarURL: in.Profile.AvatarURL}
			if err := s.st.Users.SaveProfile(ctx, tx, id, p); err != nil {
				return err
			}
			row.Profile = p
		}
		out = *row
		return nil
	})
	if err != nil {
		return dto.User{}, asConflict(err, codeDuplicateEmail, "email already registered")
	}
	return mapper.UserToDTO(out), nil
}

// Delete removes the user with everything the user owns. Courses the user
// taught lose their teacher.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	if err := s.st.Users.Delete(ctx, nil, id); err != nil {
		return err
	}
	cache.InvalidateCourses(ctx, s.cache)
	s.log.Info("user deleted", "userID", id)
	return nil
}

// GetCoursesForUser lists the courses the user is enrolled in.
func (s *UserService) GetCoursesForUser(ctx context.Context, userID uint) ([]dto.Course, error) {
	rows, err := s.st.Courses.GetByEnrolledUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	return mapper.CoursesToDTO(rows), nil
}

func validRole(role string) error {
	if !models.Role(role).Valid() {
		return apperr.Validation(fmt.Sprintf("unknown role %q", role), nil)
	}
	return nil
}

func duplicateEmail(email string) error {
	return apperr.Conflict(codeDuplicateEmail, fmt.Sprintf("email %s already registered", email))
}
