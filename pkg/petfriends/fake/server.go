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

// Package fake provides an in-memory PetFriends service for exercising the
// client without a network.  Like the real service it performs no input
// validation on pet fields.
package fake

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/Viktoria-kramar/petfriends/pkg/petfriends"
)

const maxUploadSize = 10 << 20

const forbiddenPage = `<!doctype html>
<html lang=en>
<title>403 Forbidden</title>
<h1>Forbidden</h1>
<p>Please provide 'auth_key' Header</p>
`

const badRequestPage = `<!doctype html>
<html lang=en>
<title>400 Bad Request</title>
<h1>Bad Request</h1>
`

// Account is a set of credentials accepted by the fake.
type Account struct {
	Email    string
	Password string
}

type Server struct {
	lock sync.Mutex

	// passwords maps emails to passwords.
	passwords map[string]string

	// keys maps issued auth keys to emails.
	keys map[string]string

	// pets is ordered newest first, as the service lists them.
	pets []*petfriends.Pet

	router chi.Router
}

func New(accounts ...Account) *Server {
	s := &Server{
		passwords: map[string]string{},
		keys:      map[string]string{},
	}

	for _, account := range accounts {
		s.passwords[account.Email] = account.Password
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/api/key", s.getAPIKey)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/api/pets", s.listPets)
		r.Post("/api/pets", s.createPet)
		r.Post("/api/create_pet_simple", s.createPetSimple)
		r.Post("/api/pets/set_photo/{petID}", s.setPhoto)
		r.Put("/api/pets/{petID}", s.updatePet)
		r.Delete("/api/pets/{petID}", s.deletePet)
	})

	s.router = r

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Pets returns a snapshot of every stored pet.
func (s *Server) Pets() []petfriends.Pet {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make([]petfriends.Pet, len(s.pets))

	for i, pet := range s.pets {
		out[i] = *pet
	}

	return out
}

// Seed stores a pet owned by another, unknown, account.
func (s *Server) Seed(name, animalType, age string) petfriends.Pet {
	s.lock.Lock()
	defer s.lock.Unlock()

	return *s.store("seed-"+uuid.NewString(), name, animalType, age, "")
}

type contextKey int

const emailKey contextKey = iota

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}

func writePage(w http.ResponseWriter, status int, page string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	_, _ = io.WriteString(w, page)
}

func (s *Server) getAPIKey(w http.ResponseWriter, r *http.Request) {
	email := r.Header.Get("email")
	password := r.Header.Get("password")

	s.lock.Lock()
	defer s.lock.Unlock()

	expected, ok := s.passwords[email]
	if !ok || expected != password {
		writePage(w, http.StatusForbidden, forbiddenPage)
		return
	}

	key := strings.ReplaceAll(uuid.NewString(), "-", "")
	s.keys[key] = email

	writeJSON(w, http.StatusOK, map[string]string{"key": key})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.lock.Lock()
		email, ok := s.keys[r.Header.Get("auth_key")]
		s.lock.Unlock()

		if !ok {
			writePage(w, http.StatusForbidden, forbiddenPage)
			return
		}

		next.ServeHTTP(w, r.WithContext(contextWithEmail(r, email)))
	})
}

func (s *Server) listPets(w http.ResponseWriter, r *http.Request) {
	email := emailFromContext(r)

	filter := petfriends.Filter(r.URL.Query().Get("filter"))
	if filter != petfriends.FilterAll && filter != petfriends.FilterMyPets {
		writePage(w, http.StatusBadRequest, badRequestPage)
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	list := petfriends.PetList{
		Pets: []petfriends.Pet{},
	}

	for _, pet := range s.pets {
		if filter == petfriends.FilterMyPets && pet.UserID != email {
			continue
		}

		list.Pets = append(list.Pets, *pet)
	}

	writeJSON(w, http.StatusOK, list)
}

// store records a new pet, the caller must hold the lock.
func (s *Server) store(owner, name, animalType, age, photo string) *petfriends.Pet {
	pet := &petfriends.Pet{
		ID:         uuid.NewString(),
		Name:       name,
		AnimalType: animalType,
		Age:        petfriends.Age(age),
		PetPhoto:   photo,
		UserID:     owner,
		CreatedAt:  fmt.Sprintf("%d", time.Now().Unix()),
	}

	s.pets = append([]*petfriends.Pet{pet}, s.pets...)

	return pet
}

// readPhoto renders the uploaded photo as a data URI.
func readPhoto(r *http.Request) (string, error) {
	file, header, err := r.FormFile("pet_photo")
	if err != nil {
		return "", err
	}

	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func (s *Server) createPet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writePage(w, http.StatusBadRequest, badRequestPage)
		return
	}

	photo, err := readPhoto(r)
	if err != nil {
		writePage(w, http.StatusBadRequest, badRequestPage)
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	pet := s.store(emailFromContext(r), r.FormValue("name"), r.FormValue("animal_type"), r.FormValue("age"), photo)

	writeJSON(w, http.StatusOK, pet)
}

func (s *Server) createPetSimple(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writePage(w, http.StatusBadRequest, badRequestPage)
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	pet := s.store(emailFromContext(r), r.PostFormValue("name"), r.PostFormValue("animal_type"), r.PostFormValue("age"), "")

	writeJSON(w, http.StatusOK, pet)
}

// lookup finds a pet owned by the caller, writing the failure response if
// there isn't one.  The caller must hold the lock.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (int, bool) {
	petID := chi.URLParam(r, "petID")

	for i, pet := range s.pets {
		if pet.ID != petID {
			continue
		}

		if pet.UserID != emailFromContext(r) {
			writePage(w, http.StatusForbidden, forbiddenPage)
			return 0, false
		}

		return i, true
	}

	writePage(w, http.StatusBadRequest, badRequestPage)

	return 0, false
}

func (s *Server) setPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writePage(w, http.StatusBadRequest, badRequestPage)
		return
	}

	photo, err := readPhoto(r)
	if err != nil {
		writePage(w, http.StatusBadRequest, badRequestPage)
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	i, ok := s.lookup(w, r)
	if !ok {
		return
	}

	s.pets[i].PetPhoto = photo

	writeJSON(w, http.StatusOK, s.pets[i])
}

func (s *Server) updatePet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writePage(w, http.StatusBadRequest, badRequestPage)
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	i, ok := s.lookup(w, r)
	if !ok {
		return
	}

	pet := s.pets[i]

	// Blank fields leave the stored value untouched.
	if name := r.PostFormValue("name"); name != "" {
		pet.Name = name
	}

	if animalType := r.PostFormValue("animal_type"); animalType != "" {
		pet.AnimalType = animalType
	}

	if age := r.PostFormValue("age"); age != "" {
		pet.Age = petfriends.Age(age)
	}

	writeJSON(w, http.StatusOK, pet)
}

func (s *Server) deletePet(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()

	i, ok := s.lookup(w, r)
	if !ok {
		return
	}

	s.pets = append(s.pets[:i], s.pets[i+1:]...)

	w.WriteHeader(http.StatusOK)
}
