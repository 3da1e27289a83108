package errx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestWrapStore(t *testing.T) {
	assert.Nil(t, WrapStore(nil))

	base := errors.New("connection refused")
	err := WrapStore(base)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, KindTransportFailure, KindOf(err))
	assert.Equal(t, http.StatusBadGateway, StatusOf(err))
	assert.True(t, Degradable(err))
	assert.Contains(t, err.Error(), StoreErrorMessage)
}

func TestWrapCompletionKeepsClassification(t *testing.T) {
	err := WrapCompletion(Malformed(errors.New("empty content")))
	assert.Equal(t, KindMalformedResponse, KindOf(err))

	err = WrapCompletion(context.DeadlineExceeded)
	assert.Equal(t, KindTransportFailure, KindOf(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, KindConfigurationAbsent, KindOf(fmt.Errorf("ctx: %w", Absent("no key"))))
	assert.True(t, IsKind(Invalid("name is required"), KindValidation))
	assert.False(t, IsKind(nil, KindValidation))
	assert.False(t, Degradable(Invalid("bad")))
	assert.Equal(t, http.StatusBadRequest, StatusOf(Invalid("bad")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("plain")))
}

func TestWrapRedis(t *testing.T) {
	assert.Nil(t, WrapRedis(nil))

	notFound := WrapRedis(redis.Nil)
	assert.Equal(t, http.StatusNotFound, notFound.Status)
	assert.ErrorIs(t, notFound, redis.Nil)

	failed := WrapRedis(errors.New("i/o timeout"))
	assert.Equal(t, KindTransportFailure, failed.Kind)
}
