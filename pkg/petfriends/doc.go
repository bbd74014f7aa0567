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

// Package petfriends provides a thin HTTP client for the PetFriends REST API.
//
// # Status Codes Are Results
//
// Every operation returns a Response carrying the HTTP status code and the
// decoded body, whatever the status.  The acceptance suites assert on those
// codes directly, so a 403 or 400 is a normal return value rather than an
// error.  The error return is reserved for failures that never produced a
// response: building the request, reading a photo from disk, the transport
// itself, or reading the response body.
//
// # Tracing
//
// Each request carries a freshly generated W3C traceparent header.  When a
// request fails the trace ID is logged so the call can be found in the
// service's logs.
package petfriends
