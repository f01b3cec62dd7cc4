package quota

import "errors"

// ErrInsufficientQuota is returned when a client has no LLM calls left for
// the current month.
var ErrInsufficientQuota = errors.New("monthly generation quota exhausted")

// DefaultMonthly is the number of calls granted per month.
const DefaultMonthly = 100

const periodLayout = "2006-01"
