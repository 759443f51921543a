// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnauthorized reports that no authenticated caller is present. It is
// checked once per mutating operation, before any validation-adjacent
// lookups touch the database, and blocks all mutation.
var ErrUnauthorized = errors.New("content: not authorized")

// ValidationError maps field names to human-readable problems. Returned
// before any persistence is attempted.
type ValidationError map[string]string

func (e ValidationError) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "content: invalid fields: " + strings.Join(fields, ", ")
}

// NotFoundError reports a missing record or category reference.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
