// Package sim provides the discrete-event simulation kernel for hybrid
// classical-quantum serverless workloads.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - task.go: Task, the indivisible unit of work routed between engines
//   - job.go: Job, the linear state machine that emits a task per phase
//   - event.go: the tagged Event variants that drive the simulation
//   - simulation.go: the event loop (Simulation) and admission control
//
// # Architecture
//
// The kernel is strictly single-threaded and deterministic: every run
// advances simulated time by popping the earliest Event off an EventQueue
// and dispatching it. Two resource models compete for task residuals:
//
//   - ClassicalEngine: processor-sharing across a fixed worker pool
//   - QuantumDispatcher: one-iteration-at-a-time per quantum device, with
//     a pluggable admission-ordering policy for the pending backlog
//
// Job arrivals are produced by sim/workload, which samples from empirical
// traces supplied as in-memory maps (no file I/O happens inside this
// package — trace loading is an ambient-layer concern, see cmd/).
//
// Parallelism is confined to callers: each *Simulation owns its own RNGs,
// engines, and metric accumulators, so independent replications (one per
// seed) can run concurrently without sharing state.
package sim
