package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/nearmate-api/models"
)

const (
	usersTable    = "users"
	endUsersTable = "end_users"
	partnersTable = "partners"
	otpCodesTable = "otp_codes"
)

var (
	userColumns = []string{"id", "email", "name", "role", "status", "hashed_password", "created_at"}

	otpColumns = []string{"id", "phone", "code_hash", "purpose", "actor", "is_used", "expires_at", "created_at"}

	endUserColumns = []string{"id", "name", "email", "phone", "date_of_birth", "gender", "status", "created_at"}

	partnerColumns = []string{
		"id", "login_id", "name", "email", "phone", "status",
		"service_radius_km", "pricing_type", "plan", "is_available", "created_at",
	}
)

func buildCreateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(usersTable).
		Columns(userColumns...).
		Values(user.UserID, user.Email, user.Name, user.Role, user.Status, user.HashedPassword, user.CreatedAt).
		ToSql()
}

func buildFindUserByEmailQuery(b sq.StatementBuilderType, email string) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()
}

func buildCreateOTPQuery(b sq.StatementBuilderType, otp models.OTPCode) (string, []any, error) {
	return b.Insert(otpCodesTable).
		Columns(otpColumns...).
		Values(otp.ID, otp.Phone, otp.CodeHash, string(otp.Purpose), string(otp.Actor), otp.Used, otp.ExpiresAt, otp.CreatedAt).
		ToSql()
}

// buildConsumeOTPQuery flips is_used on the newest pending code matching the
// lookup. The is_used guard on the outer UPDATE makes it a compare-and-swap:
// of two concurrent callers only one gets a row back.
func buildConsumeOTPQuery(b sq.StatementBuilderType, lookup models.OTPLookup, now time.Time) (string, []any, error) {
	// nested builders keep "?" so the outer statement numbers placeholders once
	newest := sq.Select("id").
		From(otpCodesTable).
		Where(sq.Eq{
			"phone":     lookup.Phone,
			"code_hash": lookup.CodeHash,
			"purpose":   string(lookup.Purpose),
			"actor":     string(lookup.Actor),
			"is_used":   false,
		}).
		Where(sq.Gt{"expires_at": now}).
		OrderBy("created_at DESC").
		Limit(1)

	return b.Update(otpCodesTable).
		Set("is_used", true).
		Where(sq.Expr("id = (?)", newest)).
		Where(sq.Eq{"is_used": false}).
		Suffix("RETURNING id").
		ToSql()
}

func buildFindOTPByIDQuery(b sq.StatementBuilderType, id string) (string, []any, error) {
	return b.Select(otpColumns...).
		From(otpCodesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildListOTPsQuery(b sq.StatementBuilderType, limit int) (string, []any, error) {
	return b.Select(otpColumns...).
		From(otpCodesTable).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
}

func buildCountOTPsQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select("COUNT(*)").From(otpCodesTable).ToSql()
}

func buildDeleteExpiredOTPsQuery(b sq.StatementBuilderType, now time.Time) (string, []any, error) {
	return b.Delete(otpCodesTable).
		Where(sq.Lt{"expires_at": now}).
		ToSql()
}

func buildFindEndUserByPhoneQuery(b sq.StatementBuilderType, phone string) (string, []any, error) {
	return b.Select(endUserColumns...).
		From(endUsersTable).
		Where(sq.Eq{"phone": phone}).
		Limit(1).
		ToSql()
}

func buildFindPartnerByPhoneQuery(b sq.StatementBuilderType, phone string) (string, []any, error) {
	return b.Select(partnerColumns...).
		From(partnersTable).
		Where(sq.Eq{"phone": phone}).
		Limit(1).
		ToSql()
}

func buildCreateEndUserQuery(b sq.StatementBuilderType, acc models.Account) (string, []any, error) {
	return b.Insert(endUsersTable).
		Columns(endUserColumns...).
		Values(acc.ID, acc.Name, nullString(acc.Email), acc.Phone, acc.DateOfBirth, nullString(acc.Gender), acc.Status, acc.CreatedAt).
		ToSql()
}

func buildCreatePartnerQuery(b sq.StatementBuilderType, acc models.Account) (string, []any, error) {
	available := true
	if acc.IsAvailable != nil {
		available = *acc.IsAvailable
	}

	return b.Insert(partnersTable).
		Columns(partnerColumns...).
		Values(acc.ID, nullString(acc.LoginID), acc.Name, nullString(acc.Email), acc.Phone, acc.Status,
			acc.ServiceRadiusKm, acc.PricingType, acc.Plan, available, acc.CreatedAt).
		ToSql()
}

func buildListLoginIDsQuery(b sq.StatementBuilderType, prefix string) (string, []any, error) {
	return b.Select("login_id").
		From(partnersTable).
		Where(sq.Like{"login_id": prefix + "%"}).
		ToSql()
}

func buildListPartnersWithoutLoginIDQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(partnerColumns...).
		From(partnersTable).
		Where(sq.Eq{"login_id": nil}).
		OrderBy("created_at ASC").
		ToSql()
}

func buildSetPartnerLoginIDQuery(b sq.StatementBuilderType, partnerID, loginID string) (string, []any, error) {
	return b.Update(partnersTable).
		Set("login_id", loginID).
		Where(sq.Eq{"id": partnerID}).
		ToSql()
}

// nullString stores empty optional text columns as NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
