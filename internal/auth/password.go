// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth provides password hashing and the session-backed
// authenticator for the admin panel.
package auth

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt parameters. MinBcryptCost is the floor accepted for stored hashes.
const (
	BcryptCost       = 12
	MinBcryptCost    = 10
	MaxPasswordBytes = 72
)

// ErrPasswordTooLong is returned when a password exceeds what bcrypt can hash.
var ErrPasswordTooLong = fmt.Errorf("password exceeds %d bytes", MaxPasswordBytes)

// NeedsRehash reports whether a stored hash was made with a lower cost than
// BcryptCost, or is not a bcrypt hash at all.
func NeedsRehash(encodedHash string) bool {
	cost, err := bcrypt.Cost([]byte(encodedHash))
	if err != nil {
		return true
	}
	return cost < BcryptCost
}

// HashPassword creates a salted bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword verifies a password against a bcrypt hash.
// A mismatch is (false, nil); a malformed or too-weak hash is an error.
func CheckPassword(password, encodedHash string) (bool, error) {
	cost, err := bcrypt.Cost([]byte(encodedHash))
	if err != nil {
		return false, fmt.Errorf("parsing hash: %w", err)
	}
	if cost < MinBcryptCost {
		return false, fmt.Errorf("hash cost %d below minimum %d", cost, MinBcryptCost)
	}

	err = bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("comparing password: %w", err)
	}
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// equalizeFailedCheck is called on every login failure that did not already
// pay for a bcrypt comparison. Tests replace it to observe those paths.
var equalizeFailedCheck = burnPasswordCheck

// burnPasswordCheck runs one full-cost comparison against a throwaway hash,
// so a lookup miss costs as much time as a real password check.
func burnPasswordCheck(password string) {
	dummyHashOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), BcryptCost)
		if err == nil {
			dummyHash = string(h)
		}
	})
	if dummyHash == "" {
		return
	}
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
}
