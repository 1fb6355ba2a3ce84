// Package backend is a client for the remote layout analysis service.
//
// The service receives the room and item counts, runs its own area model
// (optionally refined by a language model) and answers with a viability
// verdict, an element distribution and recommendations. It never returns
// placements, so [Analysis.ToResult] produces a [layout.Result] with an
// empty Placed list and Source set to "remote".
//
//	c := backend.NewClient("https://api.example.edu", token)
//	a, err := c.Analyze(ctx, req)
//	if err != nil {
//	    return err
//	}
//	res := a.ToResult()
//
// Errors carry codes from pkg/errors: UNAUTHORIZED for rejected tokens,
// RATE_LIMITED, NETWORK_ERROR for transport failures and 5xx responses
// (retried with backoff), INVALID_INPUT for other 4xx responses.
package backend
