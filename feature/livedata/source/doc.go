// Package source contains the three upstream adapters of the live data
// pipeline.
//
// Each adapter wraps one upstream protocol: typed REST/JSON for the live park
// API and the crowd forecast service, HTML scraping for the crowd calendar.
// Adapters are stateless translators: they own nothing persistent beyond a
// private short-TTL response cache keyed by the exact outbound URL, and they
// never write to the repository.
//
// Failures classify into a single taxonomy (SourceError): transport errors
// and timeouts are network errors, HTTP 429 is rate limiting, any other
// non-2xx is an API error, and a payload that cannot be decoded after a 2xx
// is a parse error. A park ID absent from the mapping registry is a
// configuration error (parks.ErrUnknown) and is never retried.
package source
