package usecase

import (
	"context"

	"autonego-backend/model"
	"autonego-backend/pkg/auth"
)

type UserUsecase struct {
	repo      UserStore
	jwtSecret string
}

func NewUserUsecase(repo UserStore, jwtSecret string) *UserUsecase {
	return &UserUsecase{repo: repo, jwtSecret: jwtSecret}
}

// Register creates the seller account, or logs an existing one in by email,
// and issues a session token either way.
func (u *UserUsecase) Register(ctx context.Context, name, email string) (*model.User, string, error) {
	user, err := u.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	if user == nil {
		user = &model.User{
			ID:    newID(),
			Name:  name,
			Email: email,
		}
		if err := u.repo.Insert(ctx, user); err != nil {
			return nil, "", err
		}
	}

	token, err := auth.GenerateToken(u.jwtSecret, user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
