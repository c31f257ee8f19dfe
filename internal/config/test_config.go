package config

import "time"

func LoadTestConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8081,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			Name:     "atlas_test",
			User:     "test_user",
			Password: "test_password",
		},
		Auth: AuthConfig{
			JWTSecret:        "test-secret",
			PrivilegedEmails: []string{"root@atlas.test"},
		},
		Session: SessionConfig{
			ResolveTimeout: 50 * time.Millisecond,
			WebhookSecret:  "test-webhook-secret",
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		},
	}
}
