package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatchesSentinelOfItsKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NotFound("Grupo não encontrado."))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, Kind(0), KindOf(errors.New("boom")))
}

func TestMessageIsUserFacing(t *testing.T) {
	assert.Equal(t, "Valor inválido.", Validation("Valor inválido.").Error())
	assert.Equal(t, "conflict", KindConflict.String())
}
