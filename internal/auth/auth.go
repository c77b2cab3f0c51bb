package auth

import (
	"errors"
	"strings"

	"cafe_directory/internal/domain" // Importing domain models

	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// ErrDuplicateIdentity is returned when a registration collides with an
// existing username or email.
var ErrDuplicateIdentity = errors.New("username or email already taken")

// ErrNotAuthenticated is returned for a failed login. Callers must not
// distinguish an unknown user from a wrong password in any user-visible
// message, so both cases map to this single sentinel.
var ErrNotAuthenticated = errors.New("invalid credentials")

// RegisterParams carries the fields a new user supplies at signup
type RegisterParams struct {
	Username    string // Unique username
	Email       string // Unique email
	FirstName   string // First name
	LastName    string // Last name
	Description string // Optional free-text description
	Password    string // Plaintext password, hashed before storage
	ImageURL    string // Optional profile image, placeholder when empty
}

// HashPassword produces a salted bcrypt digest of the plaintext
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the candidate reproduces the stored hash
func VerifyPassword(hash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}

// Register hashes the password and stores a new user with admin=false.
// Uniqueness of username and email is delegated to the database; a
// constraint violation on commit surfaces as ErrDuplicateIdentity.
func Register(db *gorm.DB, params RegisterParams) (*domain.User, error) {
	hash, err := HashPassword(params.Password)
	if err != nil {
		return nil, err
	}
	imageURL := params.ImageURL
	if imageURL == "" {
		imageURL = domain.DefaultProfileURL
	}
	user := domain.User{
		Username:       strings.ToLower(params.Username), // Lowercase to keep uniqueness case-insensitive
		Email:          strings.ToLower(params.Email),
		FirstName:      params.FirstName,
		LastName:       params.LastName,
		Description:    params.Description,
		ImageURL:       imageURL,
		Admin:          false, // Never settable at registration
		HashedPassword: hash,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate looks up a user by username and verifies the password.
// Unknown user and wrong password both return ErrNotAuthenticated.
func Authenticate(db *gorm.DB, username, password string) (*domain.User, error) {
	var user domain.User
	if err := db.Where("username = ?", strings.ToLower(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}
	if !VerifyPassword(user.HashedPassword, password) {
		return nil, ErrNotAuthenticated
	}
	return &user, nil
}
