package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequest_Validate(t *testing.T) {
	valid := SignupRequest{
		Email:           "gopher@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Name:            "Gopher",
	}

	tests := []struct {
		name    string
		mutate  func(r *SignupRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(*SignupRequest) {}},
		{name: "bad email", mutate: func(r *SignupRequest) { r.Email = "not-an-email" }, wantErr: true},
		{name: "missing name", mutate: func(r *SignupRequest) { r.Name = "" }, wantErr: true},
		{name: "password too short", mutate: func(r *SignupRequest) { r.Password = "ab1"; r.ConfirmPassword = "ab1" }, wantErr: true},
		{name: "password without a digit", mutate: func(r *SignupRequest) { r.Password = "lettersonly"; r.ConfirmPassword = "lettersonly" }, wantErr: true},
		{name: "password without a letter", mutate: func(r *SignupRequest) { r.Password = "12345678"; r.ConfirmPassword = "12345678" }, wantErr: true},
		{name: "confirm mismatch", mutate: func(r *SignupRequest) { r.ConfirmPassword = "secret124" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Email: "gopher@example.com", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "gopher@example.com", Password: ""}).Validate())
}
