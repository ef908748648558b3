/*
Package domain contains the core types shared across the witgo client:
the conversation context, the wire shapes returned by the Wit API, the
error taxonomy, and the lifecycle events emitted by the conversation
driver.

It has no dependencies on transport or adapters, so hosts can build
against it without pulling in HTTP or storage concerns.
*/
package domain
