package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPersonal(t *testing.T) {
	assert.True(t, IsPersonal("someone@gmail.com"))
	assert.True(t, IsPersonal("SOMEONE@Yahoo.COM"))
	assert.False(t, IsPersonal("hr@acme-corp.com"))
	assert.False(t, IsPersonal("no-at-sign"))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("hr@acme.com"))
	assert.False(t, IsValid("Ravi <hr@acme.com>"))
	assert.False(t, IsValid("hr@localhost"))
	assert.False(t, IsValid("not an email"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "hr@acme.com", Normalize("  HR@Acme.com "))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ravi Kumar", DisplayName("ravi.kumar@acme.com"))
	assert.Equal(t, "Hr", DisplayName("hr@acme.com"))
	assert.Equal(t, "User", DisplayName("@acme.com"))
	assert.Equal(t, "User", DisplayName("@"))
	assert.Equal(t, "Anita K Appeals", DisplayName("anita_k+appeals@checkr.in"))
	assert.Equal(t, "Noreply", DisplayName("noreply"))
}
