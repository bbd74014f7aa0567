/*
Copyright 2024-2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Viktoria-kramar/petfriends/pkg/petfriends"
)

var ErrMissingConfiguration = errors.New("missing required configuration")

// Credentials identify the account the suites act as.
type Credentials struct {
	Email    string
	Password string
}

type TestConfig struct {
	BaseURL         string
	Credentials     Credentials
	RequestTimeout  time.Duration
	ImagesDir       string
	SkipIntegration bool
	DebugLogging    bool
	LogRequests     bool
	LogResponses    bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if required configuration values are missing.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	debug := getBoolWithDefault("DEBUG_LOGGING", false)

	config := &TestConfig{
		BaseURL: getStringWithDefault("PETFRIENDS_BASE_URL", petfriends.DefaultBaseURL),
		Credentials: Credentials{
			Email:    os.Getenv("PETFRIENDS_EMAIL"),
			Password: os.Getenv("PETFRIENDS_PASSWORD"),
		},
		RequestTimeout:  getDurationWithDefault("REQUEST_TIMEOUT", petfriends.DefaultTimeout),
		ImagesDir:       getStringWithDefault("IMAGES_DIR", "images"),
		SkipIntegration: getBoolWithDefault("SKIP_INTEGRATION", false),
		DebugLogging:    debug,
		LogRequests:     getBoolWithDefault("LOG_REQUESTS", debug),
		LogResponses:    getBoolWithDefault("LOG_RESPONSES", debug),
	}

	if err := validateRequiredFields(config); err != nil {
		return config, err
	}

	return config, nil
}

// Image returns the path of a photo in the images directory.
func (c *TestConfig) Image(name string) string {
	return filepath.Join(c.ImagesDir, name)
}

func getStringWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

// repositoryRoot is resolved from this file's location so .env discovery
// does not depend on which package directory go test runs in.
func repositoryRoot() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "."
	}

	return filepath.Join(filepath.Dir(file), "..", "..")
}

// envFilePaths lists .env candidates in order of preference.
func envFilePaths() []string {
	root := repositoryRoot()

	return []string{
		filepath.Join(root, "test", ".env"),
		filepath.Join(root, ".env"),
	}
}

func loadEnvFile() {
	var envPath string

	for _, path := range envFilePaths() {
		if _, err := os.Stat(path); err == nil {
			envPath = path
			break
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Existing environment variables take precedence.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// validateRequiredFields checks that all required configuration values are set.
func validateRequiredFields(config *TestConfig) error {
	var missing []string

	required := []struct {
		envVar string
		value  string
	}{
		{"PETFRIENDS_EMAIL", config.Credentials.Email},
		{"PETFRIENDS_PASSWORD", config.Credentials.Password},
	}

	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s. Please set these environment variables or add them to a .env file", ErrMissingConfiguration, strings.Join(missing, ", "))
	}

	return nil
}
