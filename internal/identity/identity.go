// Package identity resolves who the current learner is and which storage
// scope their progress lives under.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GuestPrefix scopes progress for learners without an account.
const GuestPrefix = "guest_"

// ErrInvalidUserID is returned for user ids that are not UUIDs.
var ErrInvalidUserID = errors.New("invalid user id")

// Provider reports the signed-in user. An empty id means guest.
type Provider interface {
	CurrentUserID(ctx context.Context) (string, error)
}

// ProviderFunc adapts a function to a Provider.
type ProviderFunc func(ctx context.Context) (string, error)

func (f ProviderFunc) CurrentUserID(ctx context.Context) (string, error) {
	return f(ctx)
}

// Static is a Provider that always reports the same user.
type Static struct {
	userID string
}

// NewStatic validates userID and returns a Provider for it. An empty id
// yields a guest provider.
func NewStatic(userID string) (*Static, error) {
	id, err := NormalizeUserID(userID)
	if err != nil {
		return nil, err
	}
	return &Static{userID: id}, nil
}

// Guest returns a Provider with no signed-in user.
func Guest() *Static {
	return &Static{}
}

func (s *Static) CurrentUserID(context.Context) (string, error) {
	return s.userID, nil
}

// NormalizeUserID trims id and checks it is a UUID, returning it in
// canonical lower-case form. Empty input is returned unchanged.
func NormalizeUserID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", nil
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidUserID, id, err)
	}
	return u.String(), nil
}

// Prefix returns the storage key prefix for userID: "user_<id>_" for a
// signed-in user, GuestPrefix otherwise.
func Prefix(userID string) string {
	if userID == "" {
		return GuestPrefix
	}
	return "user_" + userID + "_"
}

// ResolvePrefix looks up the current user and returns their storage prefix.
func ResolvePrefix(ctx context.Context, p Provider) (string, error) {
	if p == nil {
		return GuestPrefix, nil
	}
	id, err := p.CurrentUserID(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve current user: %w", err)
	}
	return Prefix(id), nil
}
