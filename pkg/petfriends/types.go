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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

var ErrInvalidAge = errors.New("invalid age: must be a JSON string or number")

// AuthKey is the opaque key returned by the key endpoint.
type AuthKey string

// Filter selects which pets the list endpoint returns.
type Filter string

const (
	// FilterAll lists every pet on the service.
	FilterAll Filter = ""
	// FilterMyPets lists only pets owned by the caller.
	FilterMyPets Filter = "my_pets"
)

// Age is transmitted as a string, but is tolerated as a number so a change
// on the service side shows up as a failed assertion and not a decode error.
type Age string

func (a *Age) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Age(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return ErrInvalidAge
	}

	*a = Age(n.String())

	return nil
}

// Pet is a pet record as returned by the service.
type Pet struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AnimalType string `json:"animal_type"`
	Age        Age    `json:"age"`
	PetPhoto   string `json:"pet_photo"`
	UserID     string `json:"user_id,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// PetList is the body of the list endpoint.
type PetList struct {
	Pets []Pet `json:"pets"`
}

// Response is the outcome of a single API call.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Body is the decoded JSON object, empty if the payload was not one.
	Body map[string]interface{}
	// Raw is the undecoded payload.
	Raw []byte
	// TraceParent is the traceparent header sent with the request.
	TraceParent string
}

func newResponse(statusCode int, raw []byte, traceParent string) *Response {
	r := &Response{
		StatusCode:  statusCode,
		Body:        map[string]interface{}{},
		Raw:         raw,
		TraceParent: traceParent,
	}

	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err == nil && body != nil {
		r.Body = body
	}

	return r
}

// IsSuccess returns true for any 2xx status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Has returns true if the body has the named top level field.
func (r *Response) Has(field string) bool {
	_, ok := r.Body[field]

	return ok
}

// String returns a top level field rendered as a string, or an empty
// string if absent.
func (r *Response) String(field string) string {
	value, ok := r.Body[field]
	if !ok || value == nil {
		return ""
	}

	switch t := value.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// Key returns the auth key from a key response.
func (r *Response) Key() AuthKey {
	return AuthKey(r.String("key"))
}

// Pet decodes the body as a single pet.
func (r *Response) Pet() (*Pet, error) {
	var pet Pet
	if err := json.Unmarshal(r.Raw, &pet); err != nil {
		return nil, fmt.Errorf("unmarshaling pet (status %d): %w", r.StatusCode, err)
	}

	return &pet, nil
}

// Pets decodes the body as a pet list.
func (r *Response) Pets() ([]Pet, error) {
	var list PetList
	if err := json.Unmarshal(r.Raw, &list); err != nil {
		return nil, fmt.Errorf("unmarshaling pet list (status %d): %w", r.StatusCode, err)
	}

	return list.Pets, nil
}
