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

// Package cli implements the petfriends command, a thin shell over the
// client for poking at a PetFriends deployment by hand.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/Viktoria-kramar/petfriends/pkg/petfriends"
	"github.com/Viktoria-kramar/petfriends/pkg/petfriends/fake"
)

var (
	// ErrUsage is raised when the command line is malformed.
	ErrUsage = errors.New("usage error")

	// ErrLoginFailed is raised when no auth key could be obtained.
	ErrLoginFailed = errors.New("login failed")
)

const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

const (
	fakeEmail    = "demo@petfriends.local"
	fakePassword = "demo"
)

//nolint:gochecknoglobals
var (
	successColor = color.New(color.FgGreen)
	clientColor  = color.New(color.FgYellow)
	serverColor  = color.New(color.FgRed)
)

// Options are the command line options.
type Options struct {
	BaseURL  string
	Email    string
	Password string
	Timeout  time.Duration
	Output   string
	Fake     bool
	Verbose  bool
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.BaseURL, "base-url", petfriends.DefaultBaseURL, "PetFriends service to talk to")
	f.StringVar(&o.Email, "email", os.Getenv("PETFRIENDS_EMAIL"), "Account email, defaults to $PETFRIENDS_EMAIL")
	f.StringVar(&o.Password, "password", os.Getenv("PETFRIENDS_PASSWORD"), "Account password, defaults to $PETFRIENDS_PASSWORD")
	f.DurationVar(&o.Timeout, "timeout", petfriends.DefaultTimeout, "Per request timeout")
	f.StringVar(&o.Output, "output", OutputJSON, "Response body format, one of json or yaml")
	f.BoolVar(&o.Fake, "fake", false, "Talk to an in-process fake service instead")
	f.BoolVarP(&o.Verbose, "verbose", "v", false, "Log every request")
}

func (o *Options) Validate() error {
	if o.Output != OutputJSON && o.Output != OutputYAML {
		return fmt.Errorf("%w: unknown output format %q", ErrUsage, o.Output)
	}

	return nil
}

// Usage describes the commands.
const Usage = `Commands:
  key                              Get an auth key
  list [my_pets]                   List all pets, or only mine
  create NAME TYPE AGE [PHOTO]     Create a pet, with a photo if given
  photo ID PHOTO                   Set a pet's photo
  update ID NAME TYPE AGE          Update a pet
  delete ID                        Delete a pet
`

// Runner executes a single command.
type Runner struct {
	options *Options
	client  *petfriends.Client
	out     io.Writer
}

// Run executes the command named by args against the configured service
// and prints the response to out.  Service errors are printed, not returned.
func Run(ctx context.Context, options *Options, args []string, out io.Writer, logger logr.Logger) error {
	if err := options.Validate(); err != nil {
		return err
	}

	if len(args) == 0 {
		return fmt.Errorf("%w: no command given", ErrUsage)
	}

	baseURL := options.BaseURL

	if options.Fake {
		if options.Email == "" {
			options.Email = fakeEmail
			options.Password = fakePassword
		}

		service := fake.New(fake.Account{Email: options.Email, Password: options.Password})
		service.Seed("Rex", "dog", "3")

		server := httptest.NewServer(service)
		defer server.Close()

		baseURL = server.URL

		logger.V(1).Info("using fake service", "url", baseURL, "email", options.Email)
	}

	r := &Runner{
		options: options,
		client: petfriends.New(baseURL,
			petfriends.WithTimeout(options.Timeout),
			petfriends.WithLogger(logger),
			petfriends.WithRequestLogging(options.Verbose),
		),
		out: out,
	}

	return r.run(ctx, args[0], args[1:])
}

func expectArgs(command string, args []string, lower, upper int) error {
	if len(args) < lower || len(args) > upper {
		return fmt.Errorf("%w: wrong number of arguments to %s", ErrUsage, command)
	}

	return nil
}

func (r *Runner) run(ctx context.Context, command string, args []string) error {
	if command == "key" {
		if err := expectArgs(command, args, 0, 0); err != nil {
			return err
		}

		resp, err := r.client.GetAPIKey(ctx, r.options.Email, r.options.Password)
		if err != nil {
			return err
		}

		return r.print(resp)
	}

	var (
		resp *petfriends.Response
		err  error
	)

	switch command {
	case "list":
		if err := expectArgs(command, args, 0, 1); err != nil {
			return err
		}

		filter := petfriends.FilterAll
		if len(args) == 1 {
			filter = petfriends.Filter(args[0])
		}

		resp, err = r.withKey(ctx, func(key petfriends.AuthKey) (*petfriends.Response, error) {
			return r.client.ListPets(ctx, key, filter)
		})
	case "create":
		if err := expectArgs(command, args, 3, 4); err != nil {
			return err
		}

		resp, err = r.withKey(ctx, func(key petfriends.AuthKey) (*petfriends.Response, error) {
			if len(args) == 4 {
				return r.client.AddNewPet(ctx, key, args[0], args[1], args[2], args[3])
			}

			return r.client.AddNewPetWithoutPhoto(ctx, key, args[0], args[1], args[2])
		})
	case "photo":
		if err := expectArgs(command, args, 2, 2); err != nil {
			return err
		}

		resp, err = r.withKey(ctx, func(key petfriends.AuthKey) (*petfriends.Response, error) {
			return r.client.AddPhotoOfPet(ctx, key, args[0], args[1])
		})
	case "update":
		if err := expectArgs(command, args, 4, 4); err != nil {
			return err
		}

		resp, err = r.withKey(ctx, func(key petfriends.AuthKey) (*petfriends.Response, error) {
			return r.client.UpdatePetInfo(ctx, key, args[0], args[1], args[2], args[3])
		})
	case "delete":
		if err := expectArgs(command, args, 1, 1); err != nil {
			return err
		}

		resp, err = r.withKey(ctx, func(key petfriends.AuthKey) (*petfriends.Response, error) {
			return r.client.DeletePet(ctx, key, args[0])
		})
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, command)
	}

	if err != nil {
		return err
	}

	return r.print(resp)
}

// withKey logs in and then calls f with the issued key.
func (r *Runner) withKey(ctx context.Context, f func(petfriends.AuthKey) (*petfriends.Response, error)) (*petfriends.Response, error) {
	resp, err := r.client.GetAPIKey(ctx, r.options.Email, r.options.Password)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK || resp.Key() == "" {
		if err := r.print(resp); err != nil {
			return nil, err
		}

		return nil, fmt.Errorf("%w: status %d", ErrLoginFailed, resp.StatusCode)
	}

	return f(resp.Key())
}

func statusColor(code int) *color.Color {
	switch {
	case code < http.StatusBadRequest:
		return successColor
	case code < http.StatusInternalServerError:
		return clientColor
	default:
		return serverColor
	}
}

func (r *Runner) print(resp *petfriends.Response) error {
	if _, err := statusColor(resp.StatusCode).Fprintf(r.out, "%d %s\n", resp.StatusCode, http.StatusText(resp.StatusCode)); err != nil {
		return err
	}

	// Anything that isn't a JSON object, like the service's HTML error
	// pages, is shown verbatim.
	if len(resp.Body) == 0 {
		if len(resp.Raw) == 0 {
			return nil
		}

		_, err := fmt.Fprintln(r.out, string(resp.Raw))

		return err
	}

	var (
		data []byte
		err  error
	)

	switch r.options.Output {
	case OutputYAML:
		data, err = yaml.Marshal(resp.Body)
	default:
		data, err = json.MarshalIndent(resp.Body, "", "  ")
		data = append(data, '\n')
	}

	if err != nil {
		return fmt.Errorf("formatting response: %w", err)
	}

	_, err = r.out.Write(data)

	return err
}
