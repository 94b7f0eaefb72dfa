// Package processor provides request processors for rest transports: static
// headers, authentication, request identifiers, trace propagation and logging.
//
// Processors are combined in the order they are passed to the transport:
//
//	transport := rest.NewNetworkTransport(env, rest.WithProcessors(
//	    processor.RequestID(processor.UUID),
//	    processor.UnlessPath(processor.Bearer(token), "/api/login"),
//	))
package processor
