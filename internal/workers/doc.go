// Package workers provides utilities for determining optimal worker pool
// sizes in containerized environments.
//
// Go 1.19+ sets GOMAXPROCS from container CPU limits while runtime.NumCPU()
// still reports the host machine, so pool sizing is derived from
// runtime.GOMAXPROCS(0). Batch video ingestion uses ForCPU (decode/encode is
// CPU-bound); upload fan-out uses ForIO. The EXTRACT_WORKERS environment
// variable overrides the automatic calculation.
package workers
