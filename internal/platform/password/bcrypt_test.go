package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewHasher_UsesDefaultCost(t *testing.T) {
	t.Parallel()

	h := NewHasher()
	hashed, err := h.Hash("pw123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}

func TestNewHasherWithCost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cost     int
		expected int
	}{
		{"min cost", bcrypt.MinCost, bcrypt.MinCost},
		{"below range falls back", 1, DefaultCost},
		{"above range falls back", bcrypt.MaxCost + 1, DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, NewHasherWithCost(tt.cost).cost)
		})
	}
}

func TestHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewHasherWithCost(bcrypt.MinCost)

	hashed, err := h.Hash("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse", hashed, "hash must not equal plaintext")
	assert.True(t, h.Verify("correct horse", hashed))
	assert.False(t, h.Verify("correct horsf", hashed))
	assert.False(t, h.Verify("", hashed))
}

func TestHasher_Hash_IsSalted(t *testing.T) {
	t.Parallel()

	h := NewHasherWithCost(bcrypt.MinCost)

	first, err := h.Hash("same-password")
	require.NoError(t, err)
	second, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHasher_Verify_MalformedHash(t *testing.T) {
	t.Parallel()

	h := NewHasherWithCost(bcrypt.MinCost)

	for _, hash := range []string{"", "not-a-hash", "$2a$10$short"} {
		assert.False(t, h.Verify("anything", hash), "hash %q", hash)
	}
}

func TestHasher_Hash_MaxLength(t *testing.T) {
	t.Parallel()

	h := NewHasherWithCost(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("a", MaxLength))
	assert.NoError(t, err)

	_, err = h.Hash(strings.Repeat("a", MaxLength+1))
	assert.Error(t, err)
}

func TestHasher_VerifyDummy(t *testing.T) {
	t.Parallel()

	h := NewHasher()
	assert.False(t, h.VerifyDummy("anything"))
}
