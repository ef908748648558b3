/*
Package actions defines the registry of callbacks the conversation driver can
invoke on behalf of the remote service.

The registry is a closed set of handler kinds rather than an untyped callable
map: a terminal handler (the "send"/"say" callback fired on message turns),
named action handlers that compute the next context, and an optional error
handler notified when the service refuses a turn. Validation happens at
construction, so a misconfigured registry fails before the first remote call.
*/
package actions
