// Package natsutil sorts NATS and JetStream errors into the cases the dish
// registry treats differently.
package natsutil

import (
	"errors"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// connectivityErrors mean the server could not be reached, not that the
// request was rejected.
var connectivityErrors = []error{
	nats.ErrTimeout,
	nats.ErrNoServers,
	nats.ErrDisconnected,
	nats.ErrConnectionClosed,
	nats.ErrNoResponders,
	jetstream.ErrNoStreamResponse,
}

// connectivityMessages match transport failures that reach us unwrapped from
// the socket layer.
var connectivityMessages = []string{"connection refused", "i/o timeout"}

// IsConnectivityError reports whether err means the bucket is unreachable.
//
// The KV registry wraps such errors with registry.ErrUnavailable; callers keep
// building against the entries they already hold and retry the load later.
func IsConnectivityError(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range connectivityErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	msg := err.Error()
	for _, m := range connectivityMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}

	return false
}

// IsNoKeysFound reports whether err only says that the bucket is empty. An
// empty registry bucket loads as zero dishes.
func IsNoKeysFound(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, jetstream.ErrNoKeysFound) || strings.Contains(err.Error(), "no keys found")
}
