// Package client is a typed client for the lead management API.
//
// A Client carries an explicit Session (bearer token plus the signed-in
// user) that is persisted through a TokenStore. Any 401 from the server
// clears the session and the stored token. Auth layers an observable
// authentication state on top of a Client.
package client
