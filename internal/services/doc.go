// Package services defines the shared error taxonomy consumed by the store,
// the timeline builder, the insight pipeline, and the REST façade.
//
// Every recoverable failure in the core maps to one of the exported sentinel
// errors. Callers branch with errors.Is rather than matching message text,
// and the façade converts sentinels to HTTP statuses via HTTPStatus. All
// failures are recoverable at session granularity; nothing here is
// process-fatal.
package services
