package interfaces

import "context"

// Notifier is the host's user-facing message channel. Errors and confirmations
// pushed here are shown on the next rendered backend screen.
type Notifier interface {
	AddError(ctx context.Context, message string)
	AddConfirmation(ctx context.Context, message string)
	AddInfo(ctx context.Context, message string)
}

// Labels resolves localized UI strings (button titles, submit labels) for the
// current backend user.
type Labels interface {
	Label(ctx context.Context, key string, args ...any) string
}
