package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/blues/cls/internal/errs"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := errs.StateConflict("活动已结束")
	assert.Equal(t, errs.KindStateConflict, errs.KindOf(err))
	assert.Equal(t, "活动已结束", err.Error())

	// 包装后类别保留
	wrapped := fmt.Errorf("submit failed: %w", err)
	assert.Equal(t, errs.KindStateConflict, errs.KindOf(wrapped))
	assert.True(t, errs.IsKind(wrapped, errs.KindStateConflict))

	// 普通错误没有类别
	assert.Equal(t, errs.Kind(""), errs.KindOf(errors.New("plain")))
	assert.Equal(t, errs.Kind(""), errs.KindOf(nil))
}

func TestIs(t *testing.T) {
	err := errs.NotFound("活动不存在")
	assert.True(t, errors.Is(err, &errs.Error{Kind: errs.KindNotFound}))
	assert.False(t, errors.Is(err, &errs.Error{Kind: errs.KindUnauthorized}))
}
