package objectid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopcartlabs/shopcart-backend/pkg/errors"
)

func TestNewProducesValidIDs(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := New()
		require.Len(t, id, 24)
		require.True(t, IsValid(id), "generated id %q failed validation", id)
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestValidate(t *testing.T) {
	valid := "64a7f0c2e1b2c3d4e5f60718"

	assert.NoError(t, Validate("basket_id", valid))
	assert.NoError(t, Validate("basket_id", strings.ToUpper(valid)))

	cases := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"too short", "64a7f0c2e1b2"},
		{"too long", valid + "ff"},
		{"non hex", "64a7f0c2e1b2c3d4e5f6071z"},
		{"whitespace", " 64a7f0c2e1b2c3d4e5f6071"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate("user_id", tc.value)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.CodeInvalidIdentifier))
		})
	}
}
