package yaprime

import "errors"

var ErrAttemptBudgetExceeded = errors.New("prime search attempt budget exceeded")
