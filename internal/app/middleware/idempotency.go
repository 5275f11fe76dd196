package middleware

import (
	"context"
	"errors"
	"time"

	"staybook/internal/app/commands"
)

// IdempotentCommand is implemented by commands that want replay protection.
// The remote booking store performs no deduplication of its own, so a
// double-submitted create would persist twice; replaying a key returns the
// stored outcome instead of re-issuing the request.
type IdempotentCommand interface {
	commands.Command
	IdempotencyKey() string
}

// IdempotencyRecord is the stored outcome of a keyed command.
type IdempotencyRecord struct {
	Key        string
	Result     any
	Error      string
	OccurredAt time.Time
}

// IdempotencyStore persists records for the retention window.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (IdempotencyRecord, bool, error)
	Save(ctx context.Context, rec IdempotencyRecord) error
}

// Idempotency wraps the command bus with keyed replay protection. Commands
// without a key pass straight through.
func Idempotency(store IdempotencyStore) CommandMiddleware {
	if store == nil {
		panic("middleware: idempotency store required")
	}
	return func(next commands.Bus) commands.Bus {
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			idCmd, ok := cmd.(IdempotentCommand)
			if !ok {
				return next.Dispatch(ctx, cmd)
			}
			key := idCmd.IdempotencyKey()
			if key == "" {
				return next.Dispatch(ctx, cmd)
			}
			rec, found, err := store.Get(ctx, key)
			if err != nil {
				return nil, err
			}
			if found {
				if rec.Error != "" {
					return nil, errors.New(rec.Error)
				}
				return rec.Result, nil
			}
			result, err := next.Dispatch(ctx, cmd)
			record := IdempotencyRecord{Key: key, OccurredAt: time.Now().UTC()}
			if err != nil {
				record.Error = err.Error()
				if saveErr := store.Save(ctx, record); saveErr != nil {
					return nil, errors.Join(err, saveErr)
				}
				return nil, err
			}
			record.Result = result
			if saveErr := store.Save(ctx, record); saveErr != nil {
				return nil, saveErr
			}
			return result, nil
		})
	}
}
