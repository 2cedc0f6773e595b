package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecification_Where(t *testing.T) {
	spec := Where("tax_id", "12.345.678/0001-90")

	require.Len(t, spec.Conditions(), 1)
	assert.Equal(t, "tax_id", spec.Conditions()[0].Field)
	assert.Equal(t, "12.345.678/0001-90", spec.Conditions()[0].Value)
	assert.False(t, spec.IsEmpty())
}

func TestSpecification_And(t *testing.T) {
	t.Run("appends conditions in order", func(t *testing.T) {
		spec := Where("email", "a@acme.test").And("phone", "+1-555-0100")

		conditions := spec.Conditions()
		require.Len(t, conditions, 2)
		assert.Equal(t, "email", conditions[0].Field)
		assert.Equal(t, "phone", conditions[1].Field)
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		base := Where("legal_name", "Acme Foods")
		derived := base.And("email", "a@acme.test")

		assert.Len(t, base.Conditions(), 1)
		assert.Len(t, derived.Conditions(), 2)
	})
}

func TestSpecification_Empty(t *testing.T) {
	var spec Specification
	assert.True(t, spec.IsEmpty())
	assert.Empty(t, spec.Conditions())
}
