package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/benbeisheim/chess-server/internal/dataaccess"
	"github.com/benbeisheim/chess-server/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	store dataaccess.DataAccess
	cost  int
}

func NewUserService(store dataaccess.DataAccess) *UserService {
	return &UserService{
		store: store,
		cost:  bcrypt.DefaultCost,
	}
}

// Register creates the account and logs it in.
func (us *UserService) Register(username, password, email string) (model.AuthData, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || strings.TrimSpace(email) == "" {
		return model.AuthData{}, fmt.Errorf("%w: username, password and email are required", ErrBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), us.cost)
	if err != nil {
		return model.AuthData{}, fmt.Errorf("hash password: %w", err)
	}

	user := model.UserData{Username: username, PasswordHash: string(hash), Email: email}
	if err := us.store.CreateUser(user); err != nil {
		if errors.Is(err, dataaccess.ErrAlreadyExists) {
			return model.AuthData{}, fmt.Errorf("%w: username %s", ErrAlreadyTaken, username)
		}
		return model.AuthData{}, err
	}
	log.Infof("registered user %s", username)

	return us.newSession(username)
}

func (us *UserService) Login(username, password string) (model.AuthData, error) {
	if username == "" || password == "" {
		return model.AuthData{}, fmt.Errorf("%w: username and password are required", ErrBadRequest)
	}

	user, err := us.store.GetUser(username)
	if err != nil {
		if errors.Is(err, dataaccess.ErrNotFound) {
			return model.AuthData{}, ErrUnauthorized
		}
		return model.AuthData{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.AuthData{}, ErrUnauthorized
	}

	return us.newSession(username)
}

func (us *UserService) Logout(token string) error {
	if err := us.store.DeleteAuth(token); err != nil {
		if errors.Is(err, dataaccess.ErrNotFound) {
			return ErrUnauthorized
		}
		return err
	}
	return nil
}

// Authenticate resolves a token to the username it was issued to.
func (us *UserService) Authenticate(token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}
	auth, err := us.store.GetAuth(token)
	if err != nil {
		if errors.Is(err, dataaccess.ErrNotFound) {
			return "", ErrUnauthorized
		}
		return "", err
	}
	return auth.Username, nil
}

func (us *UserService) newSession(username string) (model.AuthData, error) {
	auth := model.AuthData{AuthToken: uuid.New().String(), Username: username}
	if err := us.store.CreateAuth(auth); err != nil {
		return model.AuthData{}, fmt.Errorf("create session: %w", err)
	}
	return auth, nil
}
