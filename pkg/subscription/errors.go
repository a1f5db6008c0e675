package subscription

import "errors"

// Subscription errors.
var (
	// ErrNotFound is returned when a clientHandle or MonitoredItemID
	// does not name an item registered on this subscription.
	ErrNotFound = errors.New("subscription: monitored item not found")

	// ErrUnexpectedResponse is returned when a response's concrete type
	// does not match the request that was sent.
	ErrUnexpectedResponse = errors.New("subscription: unexpected response type")

	// ErrStopped names a call made after the subscription's publish
	// loop has stopped. No function in this package returns it.
	ErrStopped = errors.New("subscription: stopped")
)
