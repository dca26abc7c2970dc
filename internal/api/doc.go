// Package api exposes the session lifecycle over HTTP for the dashboard
// and the capture producers.
//
// The façade is a thin pass-through: every handler decodes input, calls one
// store, timeline, or insights operation, and encodes the result. No
// business logic lives here. Error kinds from the services package map to
// HTTP status codes via services.HTTPStatus.
package api
