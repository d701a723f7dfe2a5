// Package bridge republishes the events of a client session to websocket
// subscribers as JSON.
//
// A Hub is a protocol.Sink. Put it in the sink chain and serve it with a
// Server:
//
//	hub := bridge.NewHub(bridge.HubConfig{})
//	c := client.New(hub, client.Options{})
//	srv := bridge.NewServer(bridge.Config{Addr: ":8089"}, hub, c)
//	go srv.ListenAndServe(ctx)
//
// Routes:
//
//	GET /events   websocket stream of Event frames
//	GET /status   session status as JSON
//	GET /healthz  liveness
//	GET /metrics  Prometheus metrics
//
// A subscriber may narrow its stream by passing ?types=tickPrice,error on
// the upgrade request, or later by sending {"types": [...]} on the socket.
// Subscribers that fall behind by more than their buffer are dropped.
package bridge
