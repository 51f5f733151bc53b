package auth

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sebuszqo/BourseDashboard/internal/user"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInternalError      = errors.New("internal Server Error")
	ErrUserInactive       = errors.New("user account is disabled")
)

type Service interface {
	Login(emailOrLogin, password string) (*user.User, string, error)
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
}

type service struct {
	userService user.Service
	jwtManager  JWTManagerInterface
	log         zerolog.Logger
}

func NewAuthService(userService user.Service, jwtManager JWTManagerInterface, log zerolog.Logger) Service {
	return &service{
		userService: userService,
		jwtManager:  jwtManager,
		log:         log.With().Str("service", "auth").Logger(),
	}
}

func (s *service) Login(emailOrLogin, password string) (*user.User, string, error) {
	existingUser, err := s.userService.GetUserByLoginOrEmail(emailOrLogin)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		s.log.Error().Err(err).Msg("Error when getting user from database")
		return nil, "", ErrInternalError
	}

	if !user.DoPasswordsMatch(existingUser.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	if !existingUser.IsActive {
		return nil, "", ErrUserInactive
	}

	jwtToken, err := s.jwtManager.GenerateAccessJWT(existingUser.ID)
	if err != nil {
		s.log.Error().Err(err).Msg("Error during JWT generation")
		return nil, "", ErrInternalError
	}

	return existingUser, jwtToken, nil
}
