//go:build unit

package user_test

import (
	"testing"

	"bookcars/internal/domain/user"
	"bookcars/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmpopts.IgnoreUnexported(user.User{}),
	cmpopts.EquateEmpty(),
}

type testCase struct {
	name   string
	mutate func(*builder.UserBuilder)
	errIs  error
}

func TestUser(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		email, _ := user.NewEmail("renter@example.com")
		name, _ := user.NewName("Asha Rao")
		phone, _ := user.NewPhone("+91 9876543210")
		role, _ := user.NewRole("renter")
		expected := user.NewUser(email, "$2a$10$abcdefghijklmnopqrstuv", name, phone, role)

		if diff := cmp.Diff(expected, actual, cmpOpts...); diff != "" {
			t.Errorf("User mismatch (-want +got):\n%s", diff)
		}

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.True(t, actual.IsActive())
		assert.Nil(t, actual.LastLogin())
	})

	t.Run("email validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "valid email ok",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("valid@example.com") },
			},
			{
				name:   "empty email rejected",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "malformed email rejected",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalid-email") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "missing at-sign rejected",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalidemail.com") },
				errIs:  user.ErrInvalidEmail,
			},
		})
	})

	t.Run("role validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "renter role ok",
				mutate: func(b *builder.UserBuilder) { b.WithRole("renter") },
			},
			{
				name:   "owner role ok",
				mutate: func(b *builder.UserBuilder) { b.WithRole("owner") },
			},
			{
				name:   "admin role ok",
				mutate: func(b *builder.UserBuilder) { b.WithRole("admin") },
			},
			{
				name:   "unknown role rejected",
				mutate: func(b *builder.UserBuilder) { b.WithRole("moderator") },
				errIs:  user.ErrInvalidRole,
			},
			{
				name:   "empty role rejected",
				mutate: func(b *builder.UserBuilder) { b.WithRole("") },
				errIs:  user.ErrInvalidRole,
			},
		})
	})

	t.Run("phone validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty phone is allowed",
				mutate: func(b *builder.UserBuilder) { b.WithPhone("") },
			},
			{
				name:   "non-numeric phone rejected",
				mutate: func(b *builder.UserBuilder) { b.WithPhone("not-a-phone") },
				errIs:  user.ErrInvalidPhone,
			},
			{
				name:   "too short phone rejected",
				mutate: func(b *builder.UserBuilder) { b.WithPhone("+1234") },
				errIs:  user.ErrInvalidPhone,
			},
		})
	})

	t.Run("name validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty name rejected",
				mutate: func(b *builder.UserBuilder) { b.WithName("") },
				errIs:  user.ErrEmptyName,
			},
			{
				name:   "whitespace-only name rejected",
				mutate: func(b *builder.UserBuilder) { b.WithName("   ") },
				errIs:  user.ErrEmptyName,
			},
		})
	})
}

func TestUser_CanListVehicles(t *testing.T) {
	cases := []struct {
		role string
		want bool
	}{
		{role: "renter", want: false},
		{role: "owner", want: true},
		{role: "admin", want: true},
	}

	for _, c := range cases {
		t.Run(c.role, func(t *testing.T) {
			u, err := builder.NewUserBuilder().WithRole(c.role).BuildDomain()
			require.NoError(t, err)
			assert.Equal(t, c.want, u.CanListVehicles())
		})
	}
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewUserBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
