// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package modelfetch

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// repoIDPattern accepts "name" and "owner/name" where each segment is made
// of the characters the hub allows in repository names.
var repoIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*(/[A-Za-z0-9][A-Za-z0-9._-]*)?$`)

var jobValidate *validator.Validate

func init() {
	jobValidate = validator.New()
	err := jobValidate.RegisterValidation("repoid", func(fl validator.FieldLevel) bool {
		return IsValidRepoID(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("modelfetch: register repoid validator: %v", err))
	}
}

// IsValidRepoID reports whether id is a repository ID the hub could
// resolve: "owner/name", or a legacy single-segment "name".
func IsValidRepoID(id string) bool {
	return repoIDPattern.MatchString(id) && !strings.Contains(id, "..")
}

// Validate checks that the job can be handed to a Fetcher.
func (j Job) Validate() error {
	if strings.TrimSpace(j.Repo) == "" {
		return ErrMissingRepo
	}
	if err := jobValidate.Struct(j); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w %q (rule %s)", ErrInvalidRepo, j.Repo, verrs[0].Tag())
		}
		return fmt.Errorf("%w %q: %v", ErrInvalidRepo, j.Repo, err)
	}
	return nil
}

// DefaultDestination derives a job's directory under base from its repo
// ID: "org/name" becomes base/org/name; anything else becomes
// base/<id with "/" replaced by "_">.
func DefaultDestination(base, repo string) string {
	parts := strings.Split(repo, "/")
	if len(parts) == 2 {
		return filepath.Join(base, parts[0], parts[1])
	}
	return filepath.Join(base, strings.ReplaceAll(repo, "/", "_"))
}

// defaultString returns s if non-empty, otherwise def.
func defaultString(s string, def string) string {
	if s == "" {
		return def
	}
	return s
}
