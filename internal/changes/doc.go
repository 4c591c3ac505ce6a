// Package changes implements the batch change engine: accumulating pending
// metadata edits, moves and uploads, committing them against the tenant, and
// reconciling the background jobs the tenant runs on our behalf.
//
// The core abstraction is [Engine], which dispatches each task variant to its
// submission protocol and advances submitted tasks by polling their status
// locations. [Manager] is the caller-facing facade that stages tasks.
//
// Three completion models hide behind one interface: metadata edits resolve
// synchronously, moves become fire-and-poll background jobs, and uploads run
// a multi-request chunked transfer followed by polling.
package changes
