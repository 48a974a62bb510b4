/*
Package ports defines the driven ports (interfaces) of morphfst.

These interfaces decouple the build and query logic from external
implementations, allowing the engine to persist automata to files, memory or
Redis and to be exposed through different transports.

# Key Interfaces

  - AutomatonStore: persists and loads compiled automata by key.
  - DistributedLocker: guards concurrent builds of the same key.
  - QueryEngine: the read side consumed by the HTTP and MCP adapters.
*/
package ports
