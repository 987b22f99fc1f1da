package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-community-backend/internal/apperr"
)

func failWith(code apperr.Code, calls *[]string, name string) Validator {
	return ValidatorFunc(func() error {
		*calls = append(*calls, name)
		return apperr.New(code, name)
	})
}

func pass(calls *[]string, name string) Validator {
	return ValidatorFunc(func() error {
		*calls = append(*calls, name)
		return nil
	})
}

func TestBucketValidateEmpty(t *testing.T) {
	assert.NoError(t, NewBucket().Validate())
}

func TestBucketFailFast(t *testing.T) {
	var calls []string
	bucket := NewBucket().
		ConsistOf(pass(&calls, "first")).
		ConsistOf(failWith(apperr.CodeNotAllowed, &calls, "second")).
		ConsistOf(failWith(apperr.CodeInternalServer, &calls, "third"))

	err := bucket.Validate()
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotAllowed, apperr.CodeOf(err))
	assert.Equal(t, []string{"first", "second"}, calls, "checks after the first failure must not run")
}

func TestBucketEvaluationOrderIsInsertionOrder(t *testing.T) {
	var calls []string
	bucket := NewBucket().
		ConsistOf(pass(&calls, "a")).
		ConsistOf(pass(&calls, "b")).
		ConsistOf(pass(&calls, "c"))

	require.NoError(t, bucket.Validate())
	assert.Equal(t, []string{"a", "b", "c"}, calls)
}

func TestBucketConsistOfLeavesReceiverUntouched(t *testing.T) {
	var calls []string
	base := NewBucket().ConsistOf(pass(&calls, "base"))

	left := base.ConsistOf(failWith(apperr.CodeNotMember, &calls, "left"))
	right := base.ConsistOf(pass(&calls, "right"))

	require.NoError(t, base.Validate())

	calls = nil
	err := left.Validate()
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotMember, apperr.CodeOf(err))
	assert.Equal(t, []string{"base", "left"}, calls)

	calls = nil
	require.NoError(t, right.Validate())
	assert.Equal(t, []string{"base", "right"}, calls)
}

func TestBucketIsReRunnable(t *testing.T) {
	var calls []string
	bucket := NewBucket().ConsistOf(pass(&calls, "only"))

	require.NoError(t, bucket.Validate())
	require.NoError(t, bucket.Validate())
	assert.Len(t, calls, 2)
}
