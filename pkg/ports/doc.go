/*
Package ports defines the driven ports (interfaces) of the witgo client.

These interfaces decouple the conversation driver and the facade from
external implementations, so transport and persistence can be swapped
without touching the core.

# Key Interfaces

  - Requester: the synchronous HTTP-like call primitive against the Wit API.
  - ContextStore: optional persistence for conversation contexts between
    client invocations.
*/
package ports
