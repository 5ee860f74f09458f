package fetcher

import (
	"errors"
	"strings"
)

// rateLimitSignatures are phrases upstream APIs use when throttling us.
var rateLimitSignatures = []string{
	"rate limit",
	"too many requests",
	"429",
	"quota exceeded",
	"api key limit",
	"daily limit exceeded",
}

// IsRateLimit reports whether err looks like a provider throttling signal.
//
// Typed FetchErrors of ErrorTypeRateLimit always match. Anything else is
// classified heuristically by a case-insensitive substring match against
// known phrases, so false negatives and positives are possible; a missed
// signal only means the provider is retried sooner than ideal.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}

	var fe *FetchError
	if errors.As(err, &fe) && fe.Type == ErrorTypeRateLimit {
		return true
	}

	return MentionsRateLimit(err.Error())
}

// MentionsRateLimit reports whether msg contains one of the known throttling
// phrases, ignoring case.
func MentionsRateLimit(msg string) bool {
	msg = strings.ToLower(msg)
	for _, sig := range rateLimitSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}
