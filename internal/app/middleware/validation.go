package middleware

import (
	"context"

	"staybook/internal/app/commands"
	"staybook/internal/app/queries"
)

// SelfValidating is implemented by commands and queries that can check their
// own structure (required ids, non-nil sessions). Domain rules do not belong
// here; those produce validation results inside the handlers.
type SelfValidating interface {
	Validate() error
}

// Validation rejects structurally invalid commands before they reach a
// handler.
func Validation() CommandMiddleware {
	return func(next commands.Bus) commands.Bus {
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			if v, ok := cmd.(SelfValidating); ok {
				if err := v.Validate(); err != nil {
					return nil, err
				}
			}
			return next.Dispatch(ctx, cmd)
		})
	}
}

// QueryValidation rejects structurally invalid queries.
func QueryValidation() QueryMiddleware {
	return func(next queries.Bus) queries.Bus {
		return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
			if v, ok := q.(SelfValidating); ok {
				if err := v.Validate(); err != nil {
					return nil, err
				}
			}
			return next.Ask(ctx, q)
		})
	}
}
