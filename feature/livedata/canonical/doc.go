// Package canonical defines the internal, source-agnostic model of park,
// attraction, entertainment and crowd data, plus the pure mapping functions
// that translate each upstream payload shape into it.
//
// Mapping is deliberately forgiving: unknown upstream status strings map to
// the most conservative canonical value instead of failing, and a missing
// stand-by wait becomes the WaitTimeUnknown sentinel (-1), which is distinct
// from a zero-minute walk-on.
package canonical
