package twofa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMechanism(t *testing.T) {
	for _, m := range []Mechanism{MechanismDisabled, MechanismEmail, MechanismTotp} {
		assert.NoError(t, ValidateMechanism(m), "mechanism %q", m)
	}

	for _, m := range []Mechanism{"", "sms", "Email", "TOTP"} {
		assert.Error(t, ValidateMechanism(m), "mechanism %q", m)
	}
}

func TestMechanismEnabled(t *testing.T) {
	assert.False(t, MechanismDisabled.Enabled())
	assert.True(t, MechanismEmail.Enabled())
	assert.True(t, MechanismTotp.Enabled())

	// Unknown values count as enabled so they reach the router's anomaly
	// handling instead of silently passing the guard
	assert.True(t, Mechanism("sms").Enabled())
}
