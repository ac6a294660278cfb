package tasksync

import "errors"

// ErrNoServerCommentID settles a comment operation that reached Resolve
// without a server-assigned id. The create cannot be confirmed without one,
// so the optimistic entry is rolled back.
var ErrNoServerCommentID = errors.New("comment resolved without a server id")
