// Package push holds the outbound notification transports. The dispatcher
// talks to a Provider, never to a socket, so the core stays testable
// without a live gateway.
package push

import "context"

// Provider delivers one alert message to one device token. Implementations
// are best-effort: a failed delivery is an error to log, never a reason to
// fail the mutation that triggered it.
type Provider interface {
	Send(ctx context.Context, deviceToken, message string) error
}
