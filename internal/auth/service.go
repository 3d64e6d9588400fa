package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"quizmaster/internal/apperr"
	"quizmaster/internal/models"
)

// Default bootstrap credentials, created on first boot so the instance is
// administrable out of the box. Insecure by definition; operators are
// expected to change them.
const (
	BootstrapAdminUsername = "admin@quizmaster.com"
	BootstrapAdminPassword = "admin123"
)

type Store interface {
	UserByUsername(username string) (*models.User, error)
	UserByID(id uint) (*models.User, error)
	CreateUser(user *models.User) error
}

type Service struct {
	store     Store
	jwtSecret []byte
	now       func() time.Time
}

func NewService(store Store, jwtSecret string) *Service {
	return &Service{
		store:     store,
		jwtSecret: []byte(jwtSecret),
		now:       time.Now,
	}
}

type RegisterInput struct {
	Username      string
	Password      string
	FullName      string
	Qualification string
	DOB           time.Time
}

// Register creates a non-admin account. A taken username is a validation
// failure and leaves the store unchanged.
func (s *Service) Register(in RegisterInput) (*models.User, error) {
	if _, err := s.store.UserByUsername(in.Username); err == nil {
		return nil, apperr.Validationf("username %q already exists", in.Username)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:      in.Username,
		Password:      string(hashedPassword),
		FullName:      in.FullName,
		Qualification: in.Qualification,
		DOB:           in.DOB,
		IsAdmin:       false,
	}
	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credential and issues a signed identity token.
func (s *Service) Login(username, password string) (string, *models.User, error) {
	user, err := s.store.UserByUsername(username)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid username or password", apperr.ErrUnauthenticated)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%w: invalid username or password", apperr.ErrUnauthenticated)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"is_admin": user.IsAdmin,
		"exp":      s.now().Add(time.Hour * 24).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	return tokenString, user, nil
}

func (s *Service) Profile(userID uint) (*models.User, error) {
	return s.store.UserByID(userID)
}

// EnsureAdmin creates the bootstrap admin account if no user holds the
// default admin username yet.
func (s *Service) EnsureAdmin() error {
	if _, err := s.store.UserByUsername(BootstrapAdminUsername); err == nil {
		return nil
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(BootstrapAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username:      BootstrapAdminUsername,
		Password:      string(hashedPassword),
		FullName:      "Quiz Master Admin",
		Qualification: "Administrator",
		DOB:           time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		IsAdmin:       true,
	}
	if err := s.store.CreateUser(admin); err != nil {
		return err
	}
	log.Printf("WARNING: created default admin %s with the default password; change it", BootstrapAdminUsername)
	return nil
}
