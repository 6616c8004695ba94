package auth

import (
	"galangan-backend/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LoginInput for login request body.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionUserShape is the object stored in session and returned by /me.
type SessionUserShape struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Tagging  string `json:"tagging"`
}

// UserFinder abstracts user lookup by username+password (for production GORM
// or test doubles).
type UserFinder interface {
	FindByUsernameAndPassword(username, password string) (*domain.User, error)
}

// GormUserFinder implements UserFinder using GORM and bcrypt.
type GormUserFinder struct{ DB *gorm.DB }

func (g *GormUserFinder) FindByUsernameAndPassword(username, password string) (*domain.User, error) {
	return LoginUser(g.DB, LoginInput{Username: username, Password: password})
}

// LoginUser finds a user by username and verifies the password. Login failures
// collapse into one message so the form cannot be used to probe usernames.
func LoginUser(db *gorm.DB, input LoginInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, ErrUsernamePasswordRequired
	}
	var u domain.User
	if err := db.Where("username = ?", input.Username).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// VerifyUser validates the session user and returns the shape for /me.
func VerifyUser(sessionUser interface{}) (*SessionUserShape, error) {
	if sessionUser == nil {
		return nil, ErrNotAuthenticated
	}
	m, ok := sessionUser.(map[string]interface{})
	if !ok {
		return nil, ErrNotAuthenticated
	}
	userID, _ := m["user_id"].(string)
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	return &SessionUserShape{
		UserID:   userID,
		Name:     str(m["name"]),
		Username: str(m["username"]),
		Tagging:  str(m["tagging"]),
	}, nil
}

func str(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
