// Package api exposes the layout pipeline over HTTP.
//
// Routes:
//
//	GET  /health                          liveness, build version and pipeline counters
//	GET  /api/v1/catalog                  every space type with its items
//	GET  /api/v1/catalog/{spaceType}      one space type; labels such as "aula" resolve
//	POST /api/v1/layout                   layout.Request -> layout.Result
//	POST /api/v1/render                   {request, options} -> rendered artifact
//	POST /api/v1/analyze                  {request, preferRemote} -> local and remote verdicts
//
// Errors are JSON objects of the form {"error": {"code": ..., "message": ...}}
// whose code is one of the [errors.Code] values. Contract violations map to
// 400 (malformed input) or 422 (well-formed but unusable), backend failures
// to 502 and everything else to 500.
//
// Every response carries an X-Request-ID header; a client-supplied value is
// kept, otherwise a random UUID is generated.
package api
