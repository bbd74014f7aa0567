/*
Copyright 2024-2025 the Unikorn Authors.

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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"net/http"
	"slices"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/spjmurray/go-util/pkg/set"

	"github.com/Viktoria-kramar/petfriends/pkg/petfriends"

	"k8s.io/utils/ptr"
)

// PetPayload describes a pet to create.  A nil photo creates the pet with
// the simple, photo-less, endpoint.
type PetPayload struct {
	Name       string
	AnimalType string
	Age        string
	Photo      *string
}

// PetPayloadBuilder builds pet payloads for testing.
type PetPayloadBuilder struct {
	payload PetPayload
}

// NewPetPayload creates a new pet payload builder with the suite's
// canonical valid pet.
func NewPetPayload(config *TestConfig) *PetPayloadBuilder {
	return &PetPayloadBuilder{
		payload: PetPayload{
			Name:       "CAT",
			AnimalType: "kitty",
			Age:        "4",
			Photo:      ptr.To(config.Image("catCL.jpg")),
		},
	}
}

func (b *PetPayloadBuilder) WithName(name string) *PetPayloadBuilder {
	b.payload.Name = name
	return b
}

func (b *PetPayloadBuilder) WithAnimalType(animalType string) *PetPayloadBuilder {
	b.payload.AnimalType = animalType
	return b
}

func (b *PetPayloadBuilder) WithAge(age string) *PetPayloadBuilder {
	b.payload.Age = age
	return b
}

func (b *PetPayloadBuilder) WithPhoto(path string) *PetPayloadBuilder {
	b.payload.Photo = ptr.To(path)
	return b
}

func (b *PetPayloadBuilder) WithoutPhoto() *PetPayloadBuilder {
	b.payload.Photo = nil
	return b
}

// Build returns the completed pet payload.
func (b *PetPayloadBuilder) Build() PetPayload {
	return b.payload
}

// GetAuthKey logs in and fails the test unless a key is issued.
func GetAuthKey(client *petfriends.Client, ctx context.Context, credentials Credentials) petfriends.AuthKey {
	resp, err := client.GetAPIKey(ctx, credentials.Email, credentials.Password)
	Expect(err).NotTo(HaveOccurred())
	Expect(resp.StatusCode).To(Equal(http.StatusOK), "Login failed: %s", string(resp.Raw))
	Expect(resp.Key()).NotTo(BeEmpty())

	return resp.Key()
}

// CreatePet creates a pet, with or without a photo.  The response is
// returned unchecked.
func CreatePet(client *petfriends.Client, ctx context.Context, key petfriends.AuthKey, payload PetPayload) *petfriends.Response {
	var (
		resp *petfriends.Response
		err  error
	)

	if payload.Photo == nil {
		resp, err = client.AddNewPetWithoutPhoto(ctx, key, payload.Name, payload.AnimalType, payload.Age)
	} else {
		resp, err = client.AddNewPet(ctx, key, payload.Name, payload.AnimalType, payload.Age, ptr.Deref(payload.Photo, ""))
	}

	Expect(err).NotTo(HaveOccurred())

	return resp
}

// CreatePetWithCleanup creates a pet and schedules automatic cleanup if the
// service stored it.
func CreatePetWithCleanup(client *petfriends.Client, ctx context.Context, key petfriends.AuthKey, payload PetPayload) (*petfriends.Response, string) {
	resp := CreatePet(client, ctx, key, payload)

	petID := resp.String("id")
	if petID == "" {
		return resp, ""
	}

	GinkgoWriter.Printf("Created pet with ID: %s\n", petID)

	// Schedule cleanup - this runs whether the test passes or fails so we don't need to clean up manually
	DeferCleanup(func() {
		GinkgoWriter.Printf("Cleaning up pet: %s\n", petID)

		deleteResp, deleteErr := client.DeletePet(ctx, key, petID)

		switch {
		case deleteErr != nil:
			GinkgoWriter.Printf("Warning: Failed to delete pet %s: %v\n", petID, deleteErr)
		case deleteResp.StatusCode != http.StatusOK:
			GinkgoWriter.Printf("Warning: Failed to delete pet %s: status %d\n", petID, deleteResp.StatusCode)
		default:
			GinkgoWriter.Printf("Successfully deleted pet: %s\n", petID)
		}
	})

	return resp, petID
}

// ListPets lists pets and fails the test unless the listing succeeds.
func ListPets(client *petfriends.Client, ctx context.Context, key petfriends.AuthKey, filter petfriends.Filter) []petfriends.Pet {
	resp, err := client.ListPets(ctx, key, filter)
	Expect(err).NotTo(HaveOccurred())
	Expect(resp.StatusCode).To(Equal(http.StatusOK))

	pets, err := resp.Pets()
	Expect(err).NotTo(HaveOccurred())

	return pets
}

// EnsureOwnPets returns the caller's pets, creating one from the payload
// first if there are none.  The created pet is deliberately not cleaned up,
// callers are expected to consume it.
func EnsureOwnPets(client *petfriends.Client, ctx context.Context, key petfriends.AuthKey, payload PetPayload) []petfriends.Pet {
	pets := ListPets(client, ctx, key, petfriends.FilterMyPets)
	if len(pets) > 0 {
		return pets
	}

	GinkgoWriter.Printf("No pets of my own, creating %q\n", payload.Name)

	resp := CreatePet(client, ctx, key, payload)
	Expect(resp.StatusCode).To(Equal(http.StatusOK), "Creating a pet of my own: %s", string(resp.Raw))

	pets = ListPets(client, ctx, key, petfriends.FilterMyPets)
	Expect(pets).NotTo(BeEmpty(), "There is no my pets")

	return pets
}

// PetIDs extracts pet IDs from a list of pets.
func PetIDs(pets []petfriends.Pet) []string {
	ids := make([]string, len(pets))

	for i, pet := range pets {
		ids[i] = pet.ID
	}

	return ids
}

// RemovedPetIDs returns the IDs present before but not after.
func RemovedPetIDs(before, after []petfriends.Pet) []string {
	removed := set.New[string](PetIDs(before)...).Difference(set.New[string](PetIDs(after)...))

	var ids []string

	for id := range removed.All() {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids
}

// VerifyPetAbsent verifies that a pet is not present in the list.
func VerifyPetAbsent(pets []petfriends.Pet, petID string) {
	Expect(PetIDs(pets)).NotTo(ContainElement(petID), "Expected pet ID %s to be absent from the list", petID)
}

// VerifyPetMatches verifies the pet carries the submitted values.
func VerifyPetMatches(pet petfriends.Pet, payload PetPayload) {
	Expect(pet.Name).To(Equal(payload.Name))
	Expect(pet.AnimalType).To(Equal(payload.AnimalType))
	Expect(string(pet.Age)).To(Equal(payload.Age))
}

// FindPet returns the pet with the given ID.
func FindPet(pets []petfriends.Pet, petID string) (petfriends.Pet, bool) {
	i := slices.IndexFunc(pets, func(pet petfriends.Pet) bool {
		return pet.ID == petID
	})

	if i < 0 {
		return petfriends.Pet{}, false
	}

	return pets[i], true
}
