// Package services defines the [ArtworkProvider] interface for album-art
// lookup backends and implements it for the iTunes Search API and Spotify.
//
// # Provider Interface
//
// Both backends take an (artist, title) pair and return the best artwork
// match, enabling the animator and the CLI to resolve covers uniformly.
//
// # iTunes Implementation
//
// [ITunesService] queries the keyless iTunes Search API, so it works with no
// configuration. The 100x100 thumbnail URL it returns is rewritten to the
// 600x600 variant the same CDN serves.
//
// # Spotify Implementation
//
// [SpotifyService] uses the OAuth2 client-credentials flow; search does not
// need user consent, only an application's client ID and secret. The
// [clientcredentials.Config] client refreshes expired tokens transparently.
//
// # Error Handling
//
// Providers use typed errors from the shared package:
//   - [shared.ErrArtworkNotFound] : the provider answered and has no match
//   - [shared.ErrProviderUnavailable] : transport or non-2xx failure
//   - [shared.ErrMissingCredentials] : Spotify configured without keys
//
// [ArtworkService] sits in front of a provider, consulting the database
// cache first and rate-limiting outbound lookups.
package services
