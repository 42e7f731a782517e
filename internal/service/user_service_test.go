package service

import (
	"Parlor/internal/api/dto"
	"Parlor/internal/model"
	"context"
	"errors"
	"testing"
)

type fakeUserRepo struct {
	users  []*model.User
	nextID uint64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1}
}

func (f *fakeUserRepo) GetUserById(_ context.Context, id uint64) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username != nil && *u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	user.ID = f.nextID
	f.nextID++
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, user *model.User) error {
	for i, u := range f.users {
		if u.ID == user.ID {
			f.users[i] = user
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	reg := &dto.RegisterDTO{Username: "alice-01", Password: "p4ssword"}
	if err := svc.Register(ctx, reg); err != nil {
		t.Fatalf("Register: %v", err)
	}

	stored, _ := repo.GetUserByUsername(ctx, "alice-01")
	if stored == nil {
		t.Fatal("user not stored")
	}
	if stored.Password == nil || *stored.Password == "p4ssword" {
		t.Error("password must be stored hashed")
	}

	// 用户名占用
	if err := svc.Register(ctx, reg); !errors.Is(err, ErrUserUsernameExist) {
		t.Errorf("duplicate register err = %v, want ErrUserUsernameExist", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	if err := svc.Register(ctx, &dto.RegisterDTO{Username: "alice-01", Password: "p4ssword"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, err := svc.Login(ctx, &dto.CredentialDTO{Username: "alice-01", Password: "p4ssword"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Error("expected a token")
	}

	_, err = svc.Login(ctx, &dto.CredentialDTO{Username: "alice-01", Password: "wrong"})
	if !errors.Is(err, ErrPasswordIncorrect) {
		t.Errorf("wrong password err = %v, want ErrPasswordIncorrect", err)
	}

	_, err = svc.Login(ctx, &dto.CredentialDTO{Username: "nobody", Password: "p4ssword"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown user err = %v, want ErrUserNotFound", err)
	}
}
