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

// Package api provides acceptance test utilities for the PetFriends API.
//
// # Live Service
//
// The suites run against a live deployment, by default the public one.
// Scenarios mutate the account's pets and do not isolate themselves from
// one another, so they must run serially, and an account that other
// people also use will see its pets come and go.
//
// # Known Defects
//
// Some scenarios assert what the service ought to do with invalid input,
// not what it does.  They are labelled "known-defect" and can be excluded
// with --label-filter='!known-defect'.
package api
