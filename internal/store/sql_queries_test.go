// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/nearmate-api/models"
)

var dollar = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func Test_buildConsumeOTPQuery_IsSingleConditionalUpdate(t *testing.T) {
	lookup := models.OTPLookup{
		Phone:    "9990001111",
		CodeHash: "abc",
		Purpose:  models.PurposeLogin,
		Actor:    models.ActorPartner,
	}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	query, args, err := buildConsumeOTPQuery(dollar, lookup, now)
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.True(t, strings.HasPrefix(q, "update otp_codes set is_used = $1"), query)
	assert.Contains(t, q, "where id = (select id from otp_codes where")
	assert.Contains(t, q, "expires_at > $")
	assert.Contains(t, q, "order by created_at desc limit 1")
	assert.Contains(t, q, "returning id")
	// the outer guard is what makes the update a compare-and-swap
	assert.Regexp(t, `\) AND is_used = \$\d+ RETURNING id$`, query)

	// placeholders are numbered once across the nested select
	assert.NotContains(t, query, "?")
	assert.Contains(t, query, "$8")
	assert.NotContains(t, query, "$9")
	require.Len(t, args, 8)
	assert.Equal(t, true, args[0])
	assert.Contains(t, args, "9990001111")
	assert.Contains(t, args, "abc")
	assert.Contains(t, args, "partner")
	assert.Contains(t, args, now)
}

func Test_buildConsumeOTPQuery_QuestionPlaceholdersForSQLite(t *testing.T) {
	query, args, err := buildConsumeOTPQuery(sq.StatementBuilder, models.OTPLookup{Phone: "1"}, time.Now())
	require.NoError(t, err)

	assert.NotContains(t, query, "$")
	assert.Equal(t, len(args), strings.Count(query, "?"))
}

func Test_buildListOTPsQuery_NewestFirstWithLimit(t *testing.T) {
	query, args, err := buildListOTPsQuery(dollar, 25)
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "from otp_codes")
	assert.Contains(t, q, "order by created_at desc")
	assert.Contains(t, q, "limit 25")
	assert.Empty(t, args)
	for _, col := range otpColumns {
		assert.Contains(t, q, col)
	}
}

func Test_buildDeleteExpiredOTPsQuery_StrictlyBefore(t *testing.T) {
	now := time.Now().UTC()

	query, args, err := buildDeleteExpiredOTPsQuery(dollar, now)
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM otp_codes WHERE expires_at < $1", query)
	assert.Equal(t, []any{now}, args)
}

func Test_buildListLoginIDsQuery_PrefixLike(t *testing.T) {
	query, args, err := buildListLoginIDsQuery(dollar, "JD")
	require.NoError(t, err)

	assert.Equal(t, "SELECT login_id FROM partners WHERE login_id LIKE $1", query)
	assert.Equal(t, []any{"JD%"}, args)
}

func Test_buildListPartnersWithoutLoginIDQuery_IsNull(t *testing.T) {
	query, _, err := buildListPartnersWithoutLoginIDQuery(dollar)
	require.NoError(t, err)

	assert.Contains(t, query, "login_id IS NULL")
}

func Test_buildCreatePartnerQuery_DefaultsAvailability(t *testing.T) {
	_, args, err := buildCreatePartnerQuery(dollar, models.Account{ID: "p1", Type: models.ActorPartner})
	require.NoError(t, err)

	require.Len(t, args, len(partnerColumns))
	assert.Nil(t, args[1], "empty login id must be stored as NULL")
	assert.Equal(t, true, args[9])
}

func Test_buildCreateUserQuery_Columns(t *testing.T) {
	query, args, err := buildCreateUserQuery(dollar, models.User{UserID: "u1", Email: "a@b.c"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "INSERT INTO users (id,email,name,role,status,hashed_password,created_at)"), query)
	assert.Len(t, args, len(userColumns))
}
