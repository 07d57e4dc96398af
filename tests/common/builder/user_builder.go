//go:build unit || e2e

package builder

import (
	domuser "bookcars/internal/domain/user"
)

type UserBuilder struct {
	Email        string
	PasswordHash string
	Name         string
	Phone        string
	Role         string
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		Email:        "renter@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Name:         "Asha Rao",
		Phone:        "+91 9876543210",
		Role:         string(domuser.RoleRenter),
	}
}

func (b *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(b)
	return b
}

func (b *UserBuilder) BuildDomain() (*domuser.User, error) {
	email, err := domuser.NewEmail(b.Email)
	if err != nil {
		return nil, err
	}
	name, err := domuser.NewName(b.Name)
	if err != nil {
		return nil, err
	}
	phone, err := domuser.NewPhone(b.Phone)
	if err != nil {
		return nil, err
	}
	role, err := domuser.NewRole(b.Role)
	if err != nil {
		return nil, err
	}
	return domuser.NewUser(email, b.PasswordHash, name, phone, role), nil
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.Name = name
	return b
}

func (b *UserBuilder) WithPhone(phone string) *UserBuilder {
	b.Phone = phone
	return b
}

func (b *UserBuilder) WithRole(role string) *UserBuilder {
	b.Role = role
	return b
}
