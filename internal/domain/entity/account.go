// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MinPasswordLength is the shortest password accepted at registration or credential change.
const MinPasswordLength = 6

// forbiddenPasswordWord may not appear anywhere in a password, regardless of case.
const forbiddenPasswordWord = "password"

// Account is the identity at the center of the social graph.
// Follows, Followers and Posts are materialised by the repository when the account is loaded.
type Account struct {
	ID           uuid.UUID   // UUIDv7, generated on registration.
	Username     string      // Free text display name, trimmed.
	Email        string      // Login identifier, trimmed and lowercased, unique.
	PasswordHash string      // bcrypt hash; plaintext is never stored.
	AvatarKey    string      // Media key of the profile image, empty when none.
	Follows      []uuid.UUID // Accounts this account follows.
	Followers    []uuid.UUID // Accounts following this account.
	Posts        []uuid.UUID // Posts owned by this account, oldest first.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsFollowing reports whether the account follows target.
func (a *Account) IsFollowing(target uuid.UUID) bool {
	return slices.Contains(a.Follows, target)
}

// IsFollowedBy reports whether follower follows the account.
func (a *Account) IsFollowedBy(follower uuid.UUID) bool {
	return slices.Contains(a.Followers, follower)
}

// HasAvatar reports whether a profile image is stored for the account.
func (a *Account) HasAvatar() bool {
	return a.AvatarKey != ""
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeUsername trims a username.
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// NormalizePassword trims surrounding whitespace; the result is what gets checked and hashed.
func NormalizePassword(password string) string {
	return strings.TrimSpace(password)
}

// PasswordAcceptable checks the password rule on a normalized password: at least
// MinPasswordLength characters and no occurrence of the word "password" in any letter case.
func PasswordAcceptable(password string) bool {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return false
	}

	return !strings.Contains(strings.ToLower(password), forbiddenPasswordWord)
}
