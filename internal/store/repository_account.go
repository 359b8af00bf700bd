package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/nearmate-api/internal/logger"
	"github.com/MKhiriev/nearmate-api/models"
)

// accountRepository keeps end users and partners in two tables sharing the
// phone-number lookup. Partners also own the login_id column.
type accountRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

func (r *accountRepository) FindAccountByPhone(ctx context.Context, kind models.ActorKind, phone string) (models.Account, error) {
	log := logger.FromContext(ctx)

	var (
		query string
		args  []any
		err   error
		scan  func(rowScanner) (models.Account, error)
	)
	switch kind {
	case models.ActorEndUser:
		query, args, err = buildFindEndUserByPhoneQuery(r.db.builder, phone)
		scan = scanEndUser
	case models.ActorPartner:
		query, args, err = buildFindPartnerByPhoneQuery(r.db.builder, phone)
		scan = scanPartner
	default:
		return models.Account{}, fmt.Errorf("%w: unknown account kind %q", ErrBuildingSQLQuery, kind)
	}
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	acc, err := scan(r.db.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Account{}, ErrAccountNotFound
	case err != nil:
		log.Err(err).Str("func", "*accountRepository.FindAccountByPhone").Msg("error selecting account")
		return models.Account{}, fmt.Errorf("unexpected DB error: %w", r.db.classify(err))
	}

	return acc, nil
}

// CreateAccount inserts an end user or a partner depending on account.Type.
//
// Error handling:
//   - unique violation on phone → [ErrPhoneAlreadyExists].
//   - unique violation on partners.login_id → [ErrLoginIDTaken].
func (r *accountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	if account.ID == "" {
		account.ID = generateID()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}
	account.CreatedAt = account.CreatedAt.UTC()
	if account.Status == "" {
		account.Status = models.StatusActive
	}

	var (
		query string
		args  []any
		err   error
		table string
	)
	switch account.Type {
	case models.ActorEndUser:
		table = endUsersTable
		query, args, err = buildCreateEndUserQuery(r.db.builder, account)
	case models.ActorPartner:
		table = partnersTable
		if account.IsAvailable == nil {
			available := true
			account.IsAvailable = &available
		}
		query, args, err = buildCreatePartnerQuery(r.db.builder, account)
	default:
		return models.Account{}, fmt.Errorf("%w: unknown account kind %q", ErrBuildingSQLQuery, account.Type)
	}
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Str("type", account.Type.String()).Msg("error inserting account")
		switch {
		case isUniqueViolation(err, table, "phone"):
			return models.Account{}, ErrPhoneAlreadyExists
		case isUniqueViolation(err, partnersTable, "login_id"):
			return models.Account{}, ErrLoginIDTaken
		default:
			return models.Account{}, fmt.Errorf("unexpected DB error: %w", r.db.classify(err))
		}
	}

	return account, nil
}

// ListLoginIDs returns every partner login id starting with prefix.
func (r *accountRepository) ListLoginIDs(ctx context.Context, prefix string) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListLoginIDsQuery(r.db.builder, prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.ListLoginIDs").Msg("error selecting login ids")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id sql.NullString
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if id.Valid {
			ids = append(ids, id.String)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return ids, nil
}

// ListPartnersWithoutLoginID returns partners created before login ids were
// assigned, oldest first.
func (r *accountRepository) ListPartnersWithoutLoginID(ctx context.Context) ([]models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListPartnersWithoutLoginIDQuery(r.db.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.ListPartnersWithoutLoginID").Msg("error selecting partners")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}
	defer rows.Close()

	var partners []models.Account
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		partners = append(partners, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return partners, nil
}

func (r *accountRepository) SetPartnerLoginID(ctx context.Context, partnerID, loginID string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSetPartnerLoginIDQuery(r.db.builder, partnerID, loginID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.SetPartnerLoginID").Msg("error updating login id")
		if isUniqueViolation(err, partnersTable, "login_id") {
			return ErrLoginIDTaken
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func scanEndUser(row rowScanner) (models.Account, error) {
	var (
		acc           models.Account
		email, gender sql.NullString
		dob           sql.NullTime
	)
	if err := row.Scan(&acc.ID, &acc.Name, &email, &acc.Phone, &dob, &gender, &acc.Status, &acc.CreatedAt); err != nil {
		return models.Account{}, err
	}

	acc.Type = models.ActorEndUser
	acc.Email = email.String
	acc.Gender = gender.String
	if dob.Valid {
		d := dob.Time
		acc.DateOfBirth = &d
	}

	return acc, nil
}

func scanPartner(row rowScanner) (models.Account, error) {
	var (
		acc            models.Account
		loginID, email sql.NullString
		available      bool
	)
	if err := row.Scan(&acc.ID, &loginID, &acc.Name, &email, &acc.Phone, &acc.Status,
		&acc.ServiceRadiusKm, &acc.PricingType, &acc.Plan, &available, &acc.CreatedAt); err != nil {
		return models.Account{}, err
	}

	acc.Type = models.ActorPartner
	acc.LoginID = loginID.String
	acc.Email = email.String
	acc.IsAvailable = &available

	return acc, nil
}
