// Package caption turns a photo into a short natural-language description
// using an external image-captioning provider. The caption is the sole input
// to trait parsing, so a captioner must never invent text: when the provider
// cannot produce a genuine caption it reports ErrUnavailable and the caller
// decides how to proceed.
package caption

import (
	"context"
	"errors"
)

// ErrUnavailable reports that the captioning provider could not be used:
// missing credential, network failure, non-2xx status, or a malformed body.
var ErrUnavailable = errors.New("caption provider unavailable")

// Captioner produces a short description of a base64-encoded photo.
// Implementations make at most one outbound call per invocation.
type Captioner interface {
	Caption(ctx context.Context, imageB64 string) (string, error)
}
