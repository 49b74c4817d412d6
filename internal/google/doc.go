// Package google owns the Google OAuth2 configuration and the on-disk
// token cache.
//
// Tokens are stored per account under the user cache directory
// (e.g. ~/.cache/daybrief/default.token) as "accessToken refreshToken".
// The auth subcommand performs the initial out-of-band exchange; after
// that the oauth2 token source refreshes access tokens transparently.
package google
