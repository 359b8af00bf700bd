package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/nearmate-api/internal/app"
	"github.com/MKhiriev/nearmate-api/internal/config"
	"github.com/MKhiriev/nearmate-api/internal/logger"
	"github.com/MKhiriev/nearmate-api/internal/store"
	"github.com/MKhiriev/nearmate-api/internal/utils"
	"github.com/MKhiriev/nearmate-api/models"
)

const (
	adminName = "Administrator"
	adminRole = "admin"
)

// accountService resolves end users and partners by phone number and
// registers new ones. It also hosts the bootstrap operations run by
// cmd/seed.
type accountService struct {
	accountRepository store.AccountRepository
	userRepository    store.UserRepository
	loginIDService    LoginIDService

	// bcryptCost is used when hashing the bootstrap administrator password.
	bcryptCost int

	logger *logger.Logger
}

func NewAccountService(
	accountRepository store.AccountRepository,
	userRepository store.UserRepository,
	loginIDService LoginIDService,
	cfg config.Auth,
	logger *logger.Logger,
) AccountService {
	return &accountService{
		accountRepository: accountRepository,
		userRepository:    userRepository,
		loginIDService:    loginIDService,
		bcryptCost:        cfg.BcryptCost,
		logger:            logger,
	}
}

// FindExisting returns the account of the given kind owning phone or
// ErrAccountNotFound.
func (s *accountService) FindExisting(ctx context.Context, phone string, actor models.ActorKind) (models.Account, error) {
	account, err := s.accountRepository.FindAccountByPhone(ctx, actor, strings.TrimSpace(phone))
	if errors.Is(err, store.ErrAccountNotFound) {
		return models.Account{}, ErrAccountNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("actor", actor.String()).Msg("account lookup failed")
		return models.Account{}, fmt.Errorf("account lookup failed: %w", err)
	}
	return account, nil
}

// FindOrCreate returns the account owning phone, creating it from data when
// none exists. The boolean reports whether the account was created by this
// call. Partners receive a freshly allocated login id.
func (s *accountService) FindOrCreate(ctx context.Context, phone string, actor models.ActorKind, data *models.RegistrationData) (models.Account, bool, error) {
	log := logger.FromContext(ctx)
	phone = strings.TrimSpace(phone)

	account, err := s.FindExisting(ctx, phone, actor)
	if err == nil {
		return account, false, nil
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return models.Account{}, false, err
	}

	if data == nil {
		return models.Account{}, false, ErrRegistrationDataRequired
	}
	if strings.TrimSpace(data.Name) == "" {
		return models.Account{}, false, fmt.Errorf("%w: name is required", ErrInvalidDataProvided)
	}

	newAccount, err := data.NewAccount(actor, phone)
	if err != nil {
		return models.Account{}, false, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	var created models.Account
	if actor == models.ActorPartner {
		_, err = s.loginIDService.AssignLoginID(ctx, newAccount.Name, func(ctx context.Context, loginID string) error {
			candidate := newAccount
			candidate.LoginID = loginID
			account, createErr := s.accountRepository.CreateAccount(ctx, candidate)
			if createErr == nil {
				created = account
			}
			return createErr
		})
	} else {
		created, err = s.accountRepository.CreateAccount(ctx, newAccount)
	}

	if errors.Is(err, store.ErrPhoneAlreadyExists) {
		// registered concurrently by another request
		log.Info().Str("actor", actor.String()).Msg("account created concurrently, reusing it")
		account, err = s.FindExisting(ctx, phone, actor)
		return account, false, err
	}
	if err != nil {
		log.Err(err).Str("actor", actor.String()).Msg("account creation failed")
		return models.Account{}, false, fmt.Errorf("account creation failed: %w", err)
	}

	log.Info().Str("id", created.ID).Str("actor", actor.String()).Msg("account registered")
	return created, true, nil
}

func (s *accountService) CheckPhoneRegistration(ctx context.Context, phone string, actor models.ActorKind) (models.CheckPhoneResponse, error) {
	account, err := s.FindExisting(ctx, phone, actor)
	if errors.Is(err, ErrAccountNotFound) {
		return models.CheckPhoneResponse{IsRegistered: false, Message: app.MsgPhoneAvailable}, nil
	}
	if err != nil {
		return models.CheckPhoneResponse{}, err
	}

	return models.CheckPhoneResponse{IsRegistered: true, ExistingUser: &account, Message: app.MsgPhoneRegistered}, nil
}

// BackfillLoginIDs assigns login ids to partners created without one, oldest
// first. It returns how many partners were updated before any error.
func (s *accountService) BackfillLoginIDs(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	partners, err := s.accountRepository.ListPartnersWithoutLoginID(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing partners without login id failed: %w", err)
	}

	updated := 0
	for _, partner := range partners {
		loginID, err := s.loginIDService.AssignLoginID(ctx, partner.Name, func(ctx context.Context, loginID string) error {
			return s.accountRepository.SetPartnerLoginID(ctx, partner.ID, loginID)
		})
		if err != nil {
			return updated, fmt.Errorf("assigning login id to partner %s failed: %w", partner.ID, err)
		}

		log.Info().Str("id", partner.ID).Str("login_id", loginID).Msg("login id assigned")
		updated++
	}

	return updated, nil
}

// BootstrapAdmin creates the administrator account unless one with the same
// email already exists; an existing account is left untouched. The boolean
// reports whether a new account was created.
func (s *accountService) BootstrapAdmin(ctx context.Context, email, password string) (models.User, bool, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.User{}, false, ErrInvalidDataProvided
	}

	existing, err := s.userRepository.FindUserByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, false, fmt.Errorf("admin lookup failed: %w", err)
	}

	hashed, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return models.User{}, false, err
	}

	created, err := s.userRepository.CreateUser(ctx, models.User{
		Email:          email,
		Name:           adminName,
		Role:           adminRole,
		Status:         models.StatusActive,
		HashedPassword: hashed,
	})
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		existing, err = s.userRepository.FindUserByEmail(ctx, email)
		return existing, false, err
	}
	if err != nil {
		return models.User{}, false, fmt.Errorf("admin creation failed: %w", err)
	}

	return created, true, nil
}
