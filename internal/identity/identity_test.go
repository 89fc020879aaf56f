package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefix(t *testing.T) {
	assert.Equal(t, "guest_", Prefix(""))
	assert.Equal(t, "user_abc_", Prefix("abc"))
}

func TestNormalizeUserID(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"empty", "", "", false},
		{"whitespace", "   ", "", false},
		{"canonical", "3f1c2a9e-5b7d-4c1e-9a2f-0d6b8e4c7a1b", "3f1c2a9e-5b7d-4c1e-9a2f-0d6b8e4c7a1b", false},
		{"upper case", "3F1C2A9E-5B7D-4C1E-9A2F-0D6B8E4C7A1B", "3f1c2a9e-5b7d-4c1e-9a2f-0d6b8e4c7a1b", false},
		{"not a uuid", "alice", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeUserID(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidUserID))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePrefix(t *testing.T) {
	ctx := context.Background()

	p, err := ResolvePrefix(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, GuestPrefix, p)

	p, err = ResolvePrefix(ctx, Guest())
	require.NoError(t, err)
	assert.Equal(t, GuestPrefix, p)

	st, err := NewStatic("3f1c2a9e-5b7d-4c1e-9a2f-0d6b8e4c7a1b")
	require.NoError(t, err)
	p, err = ResolvePrefix(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, "user_3f1c2a9e-5b7d-4c1e-9a2f-0d6b8e4c7a1b_", p)

	boom := errors.New("session expired")
	_, err = ResolvePrefix(ctx, ProviderFunc(func(context.Context) (string, error) {
		return "", boom
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestNewStaticRejectsInvalid(t *testing.T) {
	_, err := NewStatic("not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidUserID)
}
