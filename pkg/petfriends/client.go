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

package petfriends

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/Viktoria-kramar/petfriends/pkg/constants"
)

const (
	// DefaultBaseURL is the public PetFriends deployment.
	DefaultBaseURL = "https://petfriends.skillfactory.ru"

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second
)

var ErrPhotoRequired = errors.New("pet photo path is required")

//go:generate mockgen -source=client.go -destination=mock/interfaces.go -package=mock

// HTTPDoer is the part of *http.Client the client depends on.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	baseURL      string
	client       HTTPDoer
	timeout      time.Duration
	logger       logr.Logger
	endpoints    *Endpoints
	userAgent    string
	logRequests  bool
	logResponses bool
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP transport, e.g. with a mock.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.client = doer
		}
	}
}

// WithTimeout sets the per request timeout on the default HTTP client.
// It has no effect when WithHTTPClient supplies the transport.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func WithLogger(logger logr.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithRequestLogging(enabled bool) Option {
	return func(c *Client) {
		c.logRequests = enabled
	}
}

func WithResponseLogging(enabled bool) Option {
	return func(c *Client) {
		c.logResponses = enabled
	}
}

// New returns a client for the service at baseURL, or the public
// deployment if that is empty.
func New(baseURL string, options ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		timeout:   DefaultTimeout,
		logger:    logr.Discard(),
		endpoints: NewEndpoints(),
		userAgent: constants.VersionString(),
	}

	for _, option := range options {
		option(c)
	}

	if c.client == nil {
		c.client = &http.Client{
			Timeout: c.timeout,
		}
	}

	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// logError logs a generic error with trace context.
func (c *Client) logError(method, path string, duration time.Duration, traceParent string, err error, context string) {
	c.logger.Error(err, context, "method", method, "path", path, "duration", duration, "traceID", extractTraceID(traceParent))
}

// logErrorWithStatus logs an error with HTTP status code.
func (c *Client) logErrorWithStatus(method, path string, duration time.Duration, statusCode int, traceParent string, err error, context string) {
	c.logger.Error(err, context, "method", method, "path", path, "duration", duration, "status", statusCode, "traceID", extractTraceID(traceParent))
}

// logNonSuccess records non-2xx responses, they are legitimate results but
// the body is usually the only clue as to why.
func (c *Client) logNonSuccess(method, path string, statusCode int, body []byte, traceParent string) {
	c.logger.V(1).Info("non-success status", "method", method, "path", path, "status", statusCode, "body", string(body), "traceID", extractTraceID(traceParent))
}

// generateTraceID creates a new W3C trace ID.
func generateTraceID() string {
	id := make([]byte, 16)
	_, _ = rand.Read(id)

	return hex.EncodeToString(id)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	id := make([]byte, 8)
	_, _ = rand.Read(id)

	return hex.EncodeToString(id)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	return fmt.Sprintf("00-%s-%s-01", generateTraceID(), generateSpanID())
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

// doRequest performs a request and returns whatever the service answered.
// Only failures that prevent a response from being read are errors.
func (c *Client) doRequest(ctx context.Context, method, path string, header http.Header, body io.Reader) (*Response, error) {
	fullURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=ginkgo")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logError(method, path, duration, traceParent, err, "http request failed")
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logErrorWithStatus(method, path, duration, resp.StatusCode, traceParent, err, "reading response body")
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.logRequests {
		c.logger.Info("request", "method", method, "path", path, "status", resp.StatusCode, "duration", duration, "traceparent", traceParent)
	}

	if c.logResponses && len(respBody) > 0 {
		c.logger.Info("response body", "method", method, "path", path, "body", string(respBody))
	}

	response := newResponse(resp.StatusCode, respBody, traceParent)

	if !response.IsSuccess() {
		c.logNonSuccess(method, path, resp.StatusCode, respBody, traceParent)
	}

	return response, nil
}

func authHeader(key AuthKey) http.Header {
	header := http.Header{}
	header.Set("auth_key", string(key))

	return header
}

// petForm is the field set shared by every create and update call.
func petForm(name, animalType, age string) [][2]string {
	return [][2]string{
		{"name", name},
		{"animal_type", animalType},
		{"age", age},
	}
}

func encodeForm(fields [][2]string) (io.Reader, string) {
	values := url.Values{}

	for _, field := range fields {
		values.Set(field[0], field[1])
	}

	return strings.NewReader(values.Encode()), "application/x-www-form-urlencoded"
}

func photoContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}

// encodeMultipart builds a multipart body with the photo attached as
// pet_photo after the plain fields.
func encodeMultipart(fields [][2]string, photoPath string) (io.Reader, string, error) {
	photo, err := os.Open(photoPath)
	if err != nil {
		return nil, "", fmt.Errorf("opening pet photo: %w", err)
	}

	defer photo.Close()

	buffer := &bytes.Buffer{}
	writer := multipart.NewWriter(buffer)

	for _, field := range fields {
		if err := writer.WriteField(field[0], field[1]); err != nil {
			return nil, "", fmt.Errorf("writing field %s: %w", field[0], err)
		}
	}

	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="pet_photo"; filename="%s"`, filepath.Base(photoPath)))
	partHeader.Set("Content-Type", photoContentType(photoPath))

	part, err := writer.CreatePart(partHeader)
	if err != nil {
		return nil, "", fmt.Errorf("creating photo part: %w", err)
	}

	if _, err := io.Copy(part, photo); err != nil {
		return nil, "", fmt.Errorf("copying pet photo: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}

	return buffer, writer.FormDataContentType(), nil
}

// GetAPIKey exchanges credentials for an auth key.  On success the body
// has a "key" field.
func (c *Client) GetAPIKey(ctx context.Context, email, password string) (*Response, error) {
	header := http.Header{}
	header.Set("email", email)
	header.Set("password", password)

	return c.doRequest(ctx, http.MethodGet, c.endpoints.APIKey(), header, nil)
}

// ListPets lists pets visible through the filter.
func (c *Client) ListPets(ctx context.Context, key AuthKey, filter Filter) (*Response, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.ListPets(filter), authHeader(key), nil)
}

// AddNewPet creates a pet with a photo read from photoPath.
func (c *Client) AddNewPet(ctx context.Context, key AuthKey, name, animalType, age, photoPath string) (*Response, error) {
	if photoPath == "" {
		return nil, ErrPhotoRequired
	}

	body, contentType, err := encodeMultipart(petForm(name, animalType, age), photoPath)
	if err != nil {
		return nil, fmt.Errorf("adding pet: %w", err)
	}

	header := authHeader(key)
	header.Set("Content-Type", contentType)

	return c.doRequest(ctx, http.MethodPost, c.endpoints.CreatePet(), header, body)
}

// AddNewPetWithoutPhoto creates a pet with no photo.
func (c *Client) AddNewPetWithoutPhoto(ctx context.Context, key AuthKey, name, animalType, age string) (*Response, error) {
	body, contentType := encodeForm(petForm(name, animalType, age))

	header := authHeader(key)
	header.Set("Content-Type", contentType)

	return c.doRequest(ctx, http.MethodPost, c.endpoints.CreatePetSimple(), header, body)
}

// AddPhotoOfPet sets or replaces the photo of an existing pet.
func (c *Client) AddPhotoOfPet(ctx context.Context, key AuthKey, petID, photoPath string) (*Response, error) {
	if photoPath == "" {
		return nil, ErrPhotoRequired
	}

	body, contentType, err := encodeMultipart(nil, photoPath)
	if err != nil {
		return nil, fmt.Errorf("adding pet photo: %w", err)
	}

	header := authHeader(key)
	header.Set("Content-Type", contentType)

	return c.doRequest(ctx, http.MethodPost, c.endpoints.SetPetPhoto(petID), header, body)
}

// UpdatePetInfo replaces a pet's name, type and age.
func (c *Client) UpdatePetInfo(ctx context.Context, key AuthKey, petID, name, animalType, age string) (*Response, error) {
	body, contentType := encodeForm(petForm(name, animalType, age))

	header := authHeader(key)
	header.Set("Content-Type", contentType)

	return c.doRequest(ctx, http.MethodPut, c.endpoints.UpdatePet(petID), header, body)
}

// DeletePet deletes a pet.  The service answers with an empty body.
func (c *Client) DeletePet(ctx context.Context, key AuthKey, petID string) (*Response, error) {
	return c.doRequest(ctx, http.MethodDelete, c.endpoints.DeletePet(petID), authHeader(key), nil)
}
