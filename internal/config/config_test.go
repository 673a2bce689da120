package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	strongSecret := strings.Repeat("s", 32)

	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name:        "Missing Port",
			config:      Config{JWTSecret: strongSecret},
			expectError: true,
		},
		{
			name:        "Missing JWT Secret",
			config:      Config{Port: "8420"},
			expectError: true,
		},
		{
			name: "Development Defaults Pass",
			config: Config{
				Port:      "8420",
				JWTSecret: "your-secret-key-change-in-production",
				Env:       "development",
			},
		},
		{
			name: "Production Rejects Default JWT Secret",
			config: Config{
				Port:       "8420",
				JWTSecret:  "your-secret-key-change-in-production",
				DBPassword: "secure-password",
				Env:        "production",
			},
			expectError: true,
		},
		{
			name: "Production Rejects Short JWT Secret",
			config: Config{
				Port:       "8420",
				JWTSecret:  "short",
				DBPassword: "secure-password",
				Env:        "production",
			},
			expectError: true,
		},
		{
			name: "Production Rejects Weak DB Password",
			config: Config{
				Port:       "8420",
				JWTSecret:  strongSecret,
				DBPassword: "password",
				Env:        "production",
			},
			expectError: true,
		},
		{
			name: "Production With Strong Values",
			config: Config{
				Port:       "8420",
				JWTSecret:  strongSecret,
				DBPassword: "secure-password",
				DBSSLMode:  "require",
				Env:        "production",
			},
		},
		{
			name: "Prod Alias Is Strict",
			config: Config{
				Port:       "8420",
				JWTSecret:  "short",
				DBPassword: "secure-password",
				Env:        "prod",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
