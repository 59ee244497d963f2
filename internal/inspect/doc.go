// Package inspect serves a router over HTTP for debugging route configs.
//
// Routes:
//
//	GET  /healthz              liveness
//	GET  /api/parse?url=       URL tree and canonical form
//	GET  /api/recognize?url=   snapshot tree, without navigating
//	POST /api/navigate         {"url": "..."}; runs a navigation
//	GET  /api/state            live router state
//	GET  /ws                   outlet activate/deactivate events
//	GET  /metrics              Prometheus metrics
//
// Errors are returned as the JSON form of internal/errors.OutletError.
//
// The Hub is an OutletActivator: install it on the router and every
// component the router mounts or unmounts is streamed to websocket clients:
//
//	{"type":"activate","outlet":"primary","component":"team","path":"team/:id","params":{"id":"22"}}
package inspect
