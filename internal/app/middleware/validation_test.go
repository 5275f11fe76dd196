package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type invalidCommand struct{}

func (invalidCommand) Key() string     { return "test.invalid" }
func (invalidCommand) Validate() error { return errInvalid }

var errInvalid = errors.New("missing id")

func TestValidationShortCircuits(t *testing.T) {
	inner := &countingBus{result: "ok"}
	bus := ChainCommands(inner, Validation())

	_, err := bus.Dispatch(context.Background(), invalidCommand{})
	require.ErrorIs(t, err, errInvalid)
	require.Zero(t, inner.calls, "invalid commands never reach the handler")

	_, err = bus.Dispatch(context.Background(), plainCommand{})
	require.NoError(t, err)
	require.Equal(t, 1, inner.calls)
}
