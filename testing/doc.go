// Package testing provides test helpers for fspscan.
//
// It starts embedded NATS servers with JetStream so the KV dish registry can
// be tested in-process, in the manner of net/http/httptest.
//
// Example usage:
//
//	import (
//	    "testing"
//	    fsptest "github.com/arloliu/fspscan/testing"
//	)
//
//	func TestRegistry(t *testing.T) {
//	    _, nc := fsptest.StartEmbeddedNATS(t)
//	    kv := fsptest.CreateJetStreamKV(t, nc, "dishes")
//	    // ...
//	}
package testing
