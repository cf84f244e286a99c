// Package conversation contains the data model of a greeting conversation:
// roles, messages, capability requests and the append-only State log that a
// single agent run owns. Messages are immutable after creation; ordering in
// the State is the source of truth for request/result correlation.
package conversation
