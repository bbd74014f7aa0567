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
	"github.com/onsi/ginkgo/v2"

	"github.com/Viktoria-kramar/petfriends/pkg/petfriends"
)

// NewAPIClient returns a client configured for the suites.  Output goes to
// the GinkgoWriter so it is only shown for failing specs or with -v.
func NewAPIClient(config *TestConfig) *petfriends.Client {
	return petfriends.New(config.BaseURL,
		petfriends.WithTimeout(config.RequestTimeout),
		petfriends.WithLogger(ginkgo.GinkgoLogr),
		petfriends.WithRequestLogging(config.LogRequests),
		petfriends.WithResponseLogging(config.LogResponses),
	)
}
