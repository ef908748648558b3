/*
Package session provides the generation tracker that makes concurrent
conversation runs on one session safe without locking the conversation
itself.

Each call to RunActions claims a fresh generation for its session. An older
run discovers it has been superseded by comparing its captured generation
against the tracker's current one before invoking further handlers, and
stops cooperatively. Entries are advisory concurrency guards with the
lifetime of an in-flight run; they are not durable state.
*/
package session
