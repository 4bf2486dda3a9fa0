package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/saakhtemaan/pkg/api"
)

func TestRegisterAndLogin(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	reg, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:       "Manager@Example.com",
		DisplayName: "علی",
		Password:    "s3cret-pass",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if reg.Msg.Token == "" {
		t.Error("expected token")
	}
	if reg.Msg.User.Email != "manager@example.com" {
		t.Errorf("expected normalized email, got %s", reg.Msg.User.Email)
	}
	if reg.Msg.ExpiresAt <= reg.Msg.User.CreatedAt {
		t.Error("expected expiry after creation")
	}

	login, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    "manager@example.com",
		Password: "s3cret-pass",
	}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.Msg.User.ID != reg.Msg.User.ID {
		t.Errorf("expected user %s, got %s", reg.Msg.User.ID, login.Msg.User.ID)
	}

	me, err := env.auth.GetCurrentUser(ctx, authed(login.Msg.Token, &api.GetCurrentUserRequest{}))
	if err != nil {
		t.Fatalf("GetCurrentUser failed: %v", err)
	}
	if me.Msg.User.DisplayName != "علی" {
		t.Errorf("expected display name علی, got %s", me.Msg.User.DisplayName)
	}
}

func TestAuthErrors(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	env.registerManager(t, "taken@example.com")

	tests := []struct {
		name string
		call func() error
		want connect.Code
	}{
		{
			name: "duplicate email",
			call: func() error {
				_, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
					Email: "taken@example.com", DisplayName: "x", Password: "another-pass",
				}))
				return err
			},
			want: connect.CodeAlreadyExists,
		},
		{
			name: "invalid email",
			call: func() error {
				_, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
					Email: "not-an-email", DisplayName: "x", Password: "long-enough",
				}))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name: "short password",
			call: func() error {
				_, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
					Email: "new@example.com", DisplayName: "x", Password: "short",
				}))
				return err
			},
			want: connect.CodeInvalidArgument,
		},
		{
			name: "wrong password",
			call: func() error {
				_, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
					Email: "taken@example.com", Password: "wrong-password",
				}))
				return err
			},
			want: connect.CodeUnauthenticated,
		},
		{
			name: "missing token",
			call: func() error {
				_, err := env.auth.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
				return err
			},
			want: connect.CodeUnauthenticated,
		},
		{
			name: "garbage token",
			call: func() error {
				_, err := env.building.ListBuildings(ctx, authed("not.a.jwt", &api.ListBuildingsRequest{}))
				return err
			},
			want: connect.CodeUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertCode(t, tt.call(), tt.want)
		})
	}
}
