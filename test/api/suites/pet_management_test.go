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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Viktoria-kramar/petfriends/pkg/petfriends"
	"github.com/Viktoria-kramar/petfriends/test/api"
)

var _ = Describe("Pet Management", func() {
	Context("When deleting a pet", func() {
		Describe("Given I own at least one pet", func() {
			It("should remove the pet from my pets", func() {
				key := api.GetAuthKey(client, ctx, config.Credentials)

				before := api.EnsureOwnPets(client, ctx, key,
					api.NewPetPayload(config).
						WithPhoto(config.Image("cat1.jpg")).
						Build())

				petID := before[0].ID

				resp, err := client.DeletePet(ctx, key, petID)
				Expect(err).NotTo(HaveOccurred())

				after := api.ListPets(client, ctx, key, petfriends.FilterMyPets)

				Expect(resp.StatusCode).To(Equal(http.StatusOK))
				api.VerifyPetAbsent(after, petID)
				Expect(api.RemovedPetIDs(before, after)).To(ContainElement(petID))
			})
		})
	})

	Context("When updating a pet", func() {
		Describe("Given I own at least one pet", func() {
			It("should update name, type and age", func() {
				key := api.GetAuthKey(client, ctx, config.Credentials)

				pets := api.EnsureOwnPets(client, ctx, key, api.NewPetPayload(config).Build())

				resp, err := client.UpdatePetInfo(ctx, key, pets[0].ID, "Мурзик", "Котэ", "5")
				Expect(err).NotTo(HaveOccurred())

				Expect(resp.StatusCode).To(Equal(http.StatusOK))
				Expect(resp.String("name")).To(Equal("Мурзик"))
			})
		})

		Describe("Given an invalid key", func() {
			It("should be rejected", func() {
				resp, err := client.UpdatePetInfo(ctx, "not_valid_auth_key", "123456", "Мур", "Кот", "9")
				Expect(err).NotTo(HaveOccurred())

				Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
			})
		})

		Describe("Given a pet that does not exist", func() {
			It("should return a bad request", func() {
				key := api.GetAuthKey(client, ctx, config.Credentials)

				resp, err := client.UpdatePetInfo(ctx, key, "not_valid_pet_id", "Мяу", "Котик", "1")
				Expect(err).NotTo(HaveOccurred())

				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			})
		})
	})

	Context("When setting a pet's photo", func() {
		Describe("Given I own at least one pet", func() {
			It("should replace the photo", func() {
				key := api.GetAuthKey(client, ctx, config.Credentials)

				pets := api.EnsureOwnPets(client, ctx, key, api.NewPetPayload(config).Build())

				resp, err := client.AddPhotoOfPet(ctx, key, pets[0].ID, config.Image("catCL.jpg"))
				Expect(err).NotTo(HaveOccurred())

				pets = api.ListPets(client, ctx, key, petfriends.FilterMyPets)

				Expect(resp.StatusCode).To(Equal(http.StatusOK))
				Expect(resp.String("pet_photo")).To(Equal(pets[0].PetPhoto))

				GinkgoWriter.Printf("Photo added to pet %s\n", resp.String("id"))
			})
		})
	})
})
