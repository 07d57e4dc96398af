package usecase

import (
	"context"

	"bookcars/internal/domain/user"
	"bookcars/internal/handler/dto/request"
	"bookcars/internal/infra"
	"bookcars/internal/infra/repository"
	"bookcars/internal/pkg/clock"
	"bookcars/internal/pkg/errs"
	"bookcars/internal/pkg/jwt"
	"bookcars/internal/pkg/password"
	"bookcars/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUserNotFound       = errs.New("user not found")
	ErrInvalidCredentials = errs.New("invalid email or password")
	ErrUserInactive       = errs.New("user account is inactive")
	ErrEmailTaken         = errs.New("email is already registered")
	ErrTokenGeneration    = errs.New("token generation failed")
	ErrTokenValidation    = errs.New("token validation failed")
	ErrRegistrationFailed = errs.New("registration failed")
)

type AuthUseCase interface {
	Register(ctx context.Context, req request.RegisterRequest) (*queries.UserView, error)
	Login(ctx context.Context, email, plainPassword string) (string, *queries.UserView, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*queries.UserView, error)
}

type authUseCaseImpl struct {
	userRepo    *repository.UserRepository
	userQueries queries.UserQueries
	jwtService  *jwt.Service
	db          *pgxpool.Pool
	clock       clock.Clock
}

func NewAuthUseCase(
	userRepo *repository.UserRepository,
	userQueries queries.UserQueries,
	jwtService *jwt.Service,
	db *pgxpool.Pool,
	clk clock.Clock,
) AuthUseCase {
	return &authUseCaseImpl{
		userRepo:    userRepo,
		userQueries: userQueries,
		jwtService:  jwtService,
		db:          db,
		clock:       clk,
	}
}

// Register creates a renter or owner account. Admin accounts are provisioned
// out of band.
func (a *authUseCaseImpl) Register(ctx context.Context, req request.RegisterRequest) (*queries.UserView, error) {
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return nil, err
	}
	pass, err := user.NewPassword(req.Password)
	if err != nil {
		return nil, err
	}
	name, err := user.NewName(req.Name)
	if err != nil {
		return nil, err
	}
	phone, err := user.NewPhone(req.Phone)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(req.Role)
	if err != nil {
		return nil, err
	}
	if role == user.RoleAdmin {
		return nil, user.ErrInvalidRole
	}

	hash, err := password.HashPassword(pass.Value())
	if err != nil {
		return nil, errs.Mark(err, ErrRegistrationFailed)
	}

	entity := user.NewUser(email, hash, name, phone, role)
	if err := a.userRepo.Create(ctx, a.db, entity, a.clock.Now()); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, errs.Mark(err, ErrRegistrationFailed)
	}

	return a.userQueries.GetByID(ctx, entity.ID())
}

func (a *authUseCaseImpl) Login(ctx context.Context, email, plainPassword string) (string, *queries.UserView, error) {
	entity, err := a.userRepo.FindByEmail(ctx, a.db, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !entity.IsActive() {
		return "", nil, ErrUserInactive
	}

	if err := password.ComparePassword(entity.PasswordHash(), plainPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(entity.ID(), entity.Role())
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	if err := a.userRepo.UpdateLastLogin(ctx, a.db, entity.ID(), a.clock.Now()); err != nil {
		return "", nil, err
	}

	view, err := a.userQueries.GetByID(ctx, entity.ID())
	if err != nil {
		return "", nil, err
	}
	return token, view, nil
}

func (a *authUseCaseImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*queries.UserView, error) {
	view, err := a.userQueries.GetByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !view.IsActive {
		return nil, ErrUserInactive
	}
	return view, nil
}
