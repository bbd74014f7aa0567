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

var _ = Describe("Pet Listing", func() {
	Context("When listing pets", func() {
		Describe("Given a valid key and no filter", func() {
			It("should return a non-empty list", func() {
				key := api.GetAuthKey(client, ctx, config.Credentials)

				resp, err := client.ListPets(ctx, key, petfriends.FilterAll)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK))

				pets, err := resp.Pets()
				Expect(err).NotTo(HaveOccurred())
				Expect(pets).NotTo(BeEmpty())
			})
		})

		Describe("Given a valid key and the my_pets filter", func() {
			It("should only return pets of my own", func() {
				key := api.GetAuthKey(client, ctx, config.Credentials)

				_, petID := api.CreatePetWithCleanup(client, ctx, key,
					api.NewPetPayload(config).
						WithName(api.GeneratePetName()).
						Build())
				Expect(petID).NotTo(BeEmpty())

				mine := api.ListPets(client, ctx, key, petfriends.FilterMyPets)
				Expect(api.PetIDs(mine)).To(ContainElement(petID))

				owner := mine[0].UserID
				for _, pet := range mine {
					Expect(pet.UserID).To(Equal(owner))
				}
			})
		})

		Describe("Given an invalid key", func() {
			It("should be rejected", func() {
				resp, err := client.ListPets(ctx, "not_valid_auth_key", petfriends.FilterAll)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
			})
		})
	})
})
