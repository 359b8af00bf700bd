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

type otpRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewOTPRepository constructs an [OTPRepository] over the "otp_codes" table.
func NewOTPRepository(db *DB, logger *logger.Logger) OTPRepository {
	logger.Debug().Msg("creating otp repository")
	return &otpRepository{
		db:     db,
		logger: logger,
	}
}

func (r *otpRepository) CreateOTP(ctx context.Context, otp models.OTPCode) (models.OTPCode, error) {
	log := logger.FromContext(ctx)

	if otp.ID == "" {
		otp.ID = generateID()
	}
	if otp.CreatedAt.IsZero() {
		otp.CreatedAt = time.Now()
	}
	otp.CreatedAt = otp.CreatedAt.UTC()
	otp.ExpiresAt = otp.ExpiresAt.UTC()

	query, args, err := buildCreateOTPQuery(r.db.builder, otp)
	if err != nil {
		return models.OTPCode{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*otpRepository.CreateOTP").Msg("error inserting one-time code")
		return models.OTPCode{}, fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	return otp, nil
}

// ConsumeOTP atomically marks the newest pending code matching lookup as used
// and returns it. [ErrOTPNotFound] covers wrong, expired, already used and
// lost-race codes alike.
func (r *otpRepository) ConsumeOTP(ctx context.Context, lookup models.OTPLookup, now time.Time) (models.OTPCode, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildConsumeOTPQuery(r.db.builder, lookup, now.UTC())
	if err != nil {
		return models.OTPCode{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.OTPCode{}, ErrOTPNotFound
	case err != nil:
		log.Err(err).Str("func", "*otpRepository.ConsumeOTP").Msg("error consuming one-time code")
		return models.OTPCode{}, fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	query, args, err = buildFindOTPByIDQuery(r.db.builder, id)
	if err != nil {
		return models.OTPCode{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	otp, err := scanOTP(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*otpRepository.ConsumeOTP").Msg("error reading consumed one-time code")
		return models.OTPCode{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return otp, nil
}

// ListOTPs returns up to limit codes, newest first.
func (r *otpRepository) ListOTPs(ctx context.Context, limit int) ([]models.OTPCode, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListOTPsQuery(r.db.builder, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*otpRepository.ListOTPs").Msg("error selecting one-time codes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}
	defer rows.Close()

	codes := make([]models.OTPCode, 0, limit)
	for rows.Next() {
		otp, err := scanOTP(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		codes = append(codes, otp)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return codes, nil
}

func (r *otpRepository) CountOTPs(ctx context.Context) (int64, error) {
	query, args, err := buildCountOTPsQuery(r.db.builder)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*otpRepository.CountOTPs").Msg("error counting one-time codes")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}

	return total, nil
}

// DeleteExpiredOTPs removes every code whose expiry lies strictly before now
// and reports how many rows went away.
func (r *otpRepository) DeleteExpiredOTPs(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteExpiredOTPsQuery(r.db.builder, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*otpRepository.DeleteExpiredOTPs").Msg("error deleting expired one-time codes")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return deleted, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOTP(row rowScanner) (models.OTPCode, error) {
	var (
		otp            models.OTPCode
		purpose, actor string
	)
	if err := row.Scan(&otp.ID, &otp.Phone, &otp.CodeHash, &purpose, &actor, &otp.Used, &otp.ExpiresAt, &otp.CreatedAt); err != nil {
		return models.OTPCode{}, err
	}
	otp.Purpose = models.OTPPurpose(purpose)
	otp.Actor = models.ActorKind(actor)

	return otp, nil
}
