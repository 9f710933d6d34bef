package credential_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BillSync-api/pkg/credential"
)

var sixDigits = regexp.MustCompile(`^[0-9]{6}$`)

func TestGenerateOTP_SeisDigitos(t *testing.T) {
	for i := 0; i < 200; i++ {
		otp, err := credential.GenerateOTP()
		require.NoError(t, err)
		assert.Regexp(t, sixDigits, otp)
	}
}

func TestVerifyOTP_SoloElValorExacto(t *testing.T) {
	const otp = "047213"
	hash, err := credential.HashOTP(otp)
	require.NoError(t, err)

	assert.True(t, credential.VerifyOTP(otp, hash))

	// Cualquier mutación de un solo carácter debe fallar.
	for i := 0; i < len(otp); i++ {
		mutated := []byte(otp)
		mutated[i] = '0' + (otp[i]-'0'+1)%10
		assert.False(t, credential.VerifyOTP(string(mutated), hash), "mutación %s", mutated)
	}
	assert.False(t, credential.VerifyOTP(otp+"0", hash))
	assert.False(t, credential.VerifyOTP(otp[:5], hash))
	assert.False(t, credential.VerifyOTP("", hash))
	assert.False(t, credential.VerifyOTP(otp, ""))
}

func TestOTPExpired(t *testing.T) {
	issued := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	exp := credential.OTPExpiresAt(issued)

	assert.Equal(t, issued.Add(10*time.Minute), exp)
	assert.False(t, credential.OTPExpired(exp, issued.Add(9*time.Minute+59*time.Second)))
	assert.True(t, credential.OTPExpired(exp, exp))
	assert.True(t, credential.OTPExpired(exp, issued.Add(11*time.Minute)))
}

func TestPassword_HashYVerificacion(t *testing.T) {
	hash, err := credential.HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.True(t, credential.VerifyPassword("correct horse battery", hash))
	assert.False(t, credential.VerifyPassword("correct horse batterY", hash))
}
