// Package validate asks the external group authority whether a group
// currently exists. The relay never owns group lifecycles; it only
// consults this two-outcome contract on first admission and on teardown.
package validate

import "context"

// Checker reports group existence. A false return means the authority
// answered and said no; an error means the question could not be
// answered (network failure, non-2xx status), which callers treat as
// denial on join and as "gone" on teardown.
type Checker interface {
	Exists(ctx context.Context, baseURL, group string) (bool, error)
}
