// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

/*
Package events publishes run-completed events through Watermill.

After every successful analysis run a RunCompleted event is published to the
configured topic (analysis.run.completed by default). Three backends are
supported:

  - memory: an in-process Watermill gochannel, useful for tests and single
    binary deployments that subscribe in-process
  - nats: core NATS through watermill-nats
  - embedded: a NATS server started inside the process (EmbeddedServer) with
    the nats backend publishing to it, so local tools can subscribe to
    BrokerURL without running a broker

Subscribe returns a channel of events for any backend; on the NATS backends
it opens a core NATS subscription, which only sees events published after it.

Publishing is guarded by a circuit breaker so a broker outage does not slow
down the analysis scheduler; while the breaker is open, publishes fail fast
with gobreaker.ErrOpenState.

	pub, err := events.NewPublisher(cfg.Events)
	if err != nil {
	    return err
	}
	defer pub.Close()

	if err := pub.PublishRunCompleted(ctx, report); err != nil {
	    logging.Warn().Err(err).Msg("run event not published")
	}
*/
package events
