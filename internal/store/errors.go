// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements PostgreSQL data access for articles, the
// category/topic taxonomy, generation logs and settings. Lookups by ID
// return (nil, nil) when the row does not exist.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicateSlug is returned when an insert or update collides with
	// an existing slug.
	ErrDuplicateSlug = errors.New("slug already exists")

	// ErrInvalidReference is returned when a category or topic id points
	// at a row that does not exist.
	ErrInvalidReference = errors.New("referenced row does not exist")
)

// PostgreSQL error codes we translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps constraint violations onto the package sentinels and
// returns any other error unchanged.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return ErrDuplicateSlug
	case pgForeignKeyViolation:
		return ErrInvalidReference
	}
	return err
}
