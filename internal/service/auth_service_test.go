package service

import (
	"errors"
	"testing"

	"profitum/config"
)

func newTestAuthService() *AuthService {
	return NewAuthService(&config.Config{
		JWTSecret:     "test-secret",
		AdminUsername: "admin",
		AdminPassword: "hunter2",
	})
}

func TestAdminLogin(t *testing.T) {
	svc := newTestAuthService()

	resp, err := svc.Login("admin", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" || resp.AdminID == "" {
		t.Fatalf("incomplete login response: %+v", resp)
	}

	claims, err := svc.ValidateAdminToken(resp.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.AdminID != resp.AdminID {
		t.Errorf("claims.AdminID = %s, want %s", claims.AdminID, resp.AdminID)
	}
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestAuthService()
	for _, c := range [][2]string{
		{"admin", "wrong"},
		{"root", "hunter2"},
		{"", ""},
	} {
		if _, err := svc.Login(c[0], c[1]); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(%q, %q) err = %v, want ErrInvalidCredentials", c[0], c[1], err)
		}
	}
}

func TestValidateAdminTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService()
	if _, err := svc.ValidateAdminToken("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestClientTokenRoundTrip(t *testing.T) {
	svc := newTestAuthService()

	token, err := svc.GenerateClientToken("client-42")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := svc.ValidateClientToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.ClientID != "client-42" {
		t.Errorf("claims.ClientID = %s, want client-42", claims.ClientID)
	}

	other := NewAuthService(&config.Config{JWTSecret: "other-secret"})
	if _, err := other.ValidateClientToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign secret: err = %v, want ErrInvalidToken", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	svc := newTestAuthService()

	hash, err := svc.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("password not hashed")
	}
	if err := svc.CheckPassword(hash, "s3cret-pass"); err != nil {
		t.Errorf("check: %v", err)
	}
	if err := svc.CheckPassword(hash, "wrong"); err == nil {
		t.Error("wrong password accepted")
	}
}
