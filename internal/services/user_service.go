package services

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "fittrack/internal/errors"
	"fittrack/internal/logger"
	"fittrack/internal/models"
	"fittrack/internal/uuid"
	"fittrack/internal/validator"
)

// Field limits mirrored from the users table.
const (
	minNameChars     = 3
	maxNameChars     = 100
	maxEmailChars    = 255
	minPasswordChars = 8
	maxPasswordBytes = 72 // bcrypt ignores anything longer
)

// userService handles user-related business logic.
type userService struct {
	db         *gorm.DB
	bcryptCost int
}

// NewUserService creates a new UserServicer that hashes passwords with the given bcrypt cost.
func NewUserService(db *gorm.DB, bcryptCost int) UserServicer {
	return &userService{db: db, bcryptCost: bcryptCost}
}

// CreateUser validates a registration request, hashes the password and
// persists a new user. The account type is always "user".
func (s *userService) CreateUser(input CreateUserInput) (*models.User, error) {
	v := validator.New()
	checkName(v, "firstName", input.FirstName)
	checkName(v, "lastName", input.LastName)
	checkEmail(v, input.Email)
	checkPassword(v, input.Password)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if input.AccountType != "" && input.AccountType != string(models.AccountTypeUser) {
		logger.Get().Infow("ignoring requested account type on registration", "requested", input.AccountType)
	}

	// Check if user with email exists
	var count int64
	if err := s.db.Model(&models.User{}).Where("LOWER(email) = LOWER(?)", input.Email).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPasswordHash, err)
	}

	user := &models.User{
		Base:                models.Base{Key: models.Key{ID: uuid.New()}},
		Email:               input.Email,
		PasswordHash:        string(hashedPassword),
		FirstName:           input.FirstName,
		LastName:            input.LastName,
		AccountType:         models.AccountTypeUser,
		Active:              true,
		PreferredUnitSystem: models.UnitSystemMetric,
	}

	// The unique index on lower(email) still catches a concurrent registration
	// that slipped past the count above.
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Wrap(apperrors.ErrDuplicateEmail, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// GetUserByEmail retrieves an active user by email, ignoring case
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("LOWER(email) = LOWER(?) AND active = ?", email, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// VerifyPassword checks if the provided password matches the stored hash
func (s *userService) VerifyPassword(user *models.User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	return err == nil
}

// AttemptLogin checks credentials and records the login time. Unknown
// emails and wrong passwords produce the same error.
func (s *userService) AttemptLogin(email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrUserNotFound.Code {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.VerifyPassword(user, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.db.Model(user).UpdateColumn("last_login", now).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	user.LastLogin = &now

	return user, nil
}

// UpdateUser applies name and unit-system changes to a user.
func (s *userService) UpdateUser(id string, input UpdateUserInput) (*models.User, error) {
	v := validator.New()
	if input.FirstName != nil {
		checkName(v, "firstName", *input.FirstName)
	}
	if input.LastName != nil {
		checkName(v, "lastName", *input.LastName)
	}
	if input.PreferredUnitSystem != nil {
		v.Check(!models.IsOneOf(*input.PreferredUnitSystem, models.UnitSystems), "preferredUnitSystem", "is not a permitted value")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.FirstName != nil {
		updates["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		updates["last_name"] = *input.LastName
	}
	if input.PreferredUnitSystem != nil {
		updates["preferred_unit_system"] = *input.PreferredUnitSystem
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return user, nil
}

// DeleteUser removes a user. Owned rows go with it through ON DELETE CASCADE;
// exercises the user authored stay in the library with no creator.
func (s *userService) DeleteUser(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// ResetPassword stores a new password hash and revokes every outstanding
// authentication and password-reset token of the user.
func (s *userService) ResetPassword(userID, newPassword string) error {
	v := validator.New()
	checkPassword(v, newPassword)
	if err := v.Err(); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrPasswordHash, err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", string(hashedPassword))
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrUserNotFound
		}

		if err := tx.Where("user_id = ? AND scope IN ?", userID,
			[]models.TokenScope{models.ScopeAuthentication, models.ScopePasswordReset}).
			Delete(&models.Token{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

func checkName(v *validator.Validator, field, value string) {
	v.Check(value == "", field, "is required")
	v.Check(!validator.MinChars(value, minNameChars), field, "must be at least 3 characters")
	v.Check(!validator.MaxChars(value, maxNameChars), field, "must not be more than 100 characters")
}

func checkEmail(v *validator.Validator, email string) {
	v.Check(email == "", "email", "is required")
	v.Check(!validator.Matches(email, validator.EmailRX), "email", "must be a valid email address")
	v.Check(!validator.MaxChars(email, maxEmailChars), "email", "must not be more than 255 characters")
}

func checkPassword(v *validator.Validator, password string) {
	v.Check(password == "", "password", "is required")
	v.Check(!validator.MinChars(password, minPasswordChars), "password", "must be at least 8 characters")
	v.Check(len(password) > maxPasswordBytes, "password", "must not be more than 72 bytes long")
}
