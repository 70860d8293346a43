package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorPredicatesSeeThroughWrapping(t *testing.T) {
	cause := errors.New("duplicate")
	err := fmt.Errorf("create asset: %w", ConflictError{Resource: "demirbaş", Msg: "kod kullanımda", Err: cause})

	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "create asset: demirbaş: kod kullanımda", err.Error())
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "kategori bulunamadı", NotFoundError{Resource: "kategori"}.Error())
	assert.Equal(t, "kayıt bulunamadı", NotFoundError{}.Error())
	assert.Equal(t, "code: boş olamaz", ValidationError{Field: "code", Msg: "boş olamaz"}.Error())
	assert.Equal(t, "geçersiz status", ValidationError{Field: "status"}.Error())
	assert.Equal(t, "bu işlem için yetkiniz yok", ForbiddenError{}.Error())
	assert.Equal(t, "oturum açmanız gerekiyor", UnauthorizedError{}.Error())
	assert.True(t, IsForbidden(ForbiddenError{}))
	assert.True(t, IsUnauthorized(UnauthorizedError{}))
	assert.True(t, IsInternal(InternalError{Err: errors.New("x")}))
}
