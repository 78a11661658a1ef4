package errs_test

import (
	"errors"
	"testing"

	"github.com/cotulenh-dev/cotulenh-engine/pkg/errs"
	"github.com/stretchr/testify/assert"
)

func TestStackErrorAs(t *testing.T) {
	var err error = &errs.StackError{Kind: errs.SlotFull, Detail: "no room"}

	var se *errs.StackError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, errs.SlotFull, se.Kind)
	assert.Contains(t, se.Error(), "SlotFull")
}

func TestDeployErrorAs(t *testing.T) {
	var err error = &errs.DeployError{Kind: errs.NonRecombinable}

	var de *errs.DeployError
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, errs.NonRecombinable, de.Kind)
}

func TestInvalidFENWithAndWithoutLocation(t *testing.T) {
	e1 := &errs.InvalidFEN{Reason: "bad board"}
	assert.Equal(t, "invalid FEN: bad board", e1.Error())

	e2 := &errs.InvalidFEN{Reason: "bad board", Location: "field 1"}
	assert.Equal(t, "invalid FEN at field 1: bad board", e2.Error())
}
