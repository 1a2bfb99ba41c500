// Package notification contains the notification domain model: the stored
// in-app notification record, the delivery channel enumeration, and the
// per-user channel preference value object.
package notification
