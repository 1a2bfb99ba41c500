// Package kernel contains shared value objects used across aggregates:
// UUID identifiers, WGS-84 geo points with haversine distance, and E.164
// phone numbers. All types follow the constructor-guard pattern: the zero
// value is invalid and construction goes through validating factories.
package kernel
