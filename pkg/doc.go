// Package pkg provides the core libraries behind floorsa, a B*-tree
// simulated-annealing floorplanner.
//
// # Overview
//
// floorsa searches for a low-cost rectangular-block floorplan: given a
// catalogue of blocks (each with one or more discrete shape variants), it
// looks for an arrangement minimising a blend of total chip area (penalised
// for extreme aspect ratios) and the linearity of block-center placement
// along sorted block names. The search runs one of three concurrency
// strategies over the same SA kernel.
//
// # Architecture
//
// The typical data flow through a run:
//
//	.block input file
//	        ↓
//	   [blockio] ReadCatalogue — parse into a Catalogue
//	        ↓
//	   [strategy] Run        — dispatch to one of three concurrency strategies
//	        ↓                    each repeatedly:
//	   [bstree] NewRandom/Clone
//	        ↓
//	   [perturb] Perturb     — rotate / swap / move
//	        ↓
//	   [packer] Pack         — B*-tree → (x, y) via [contour]
//	        ↓
//	   [cost] Evaluate       — area, aspect penalty, INL → Cost
//	        ↓
//	   [ledger] Update       — compare-and-replace global best, emit event
//	        ↓
//	   [blockio] WriteResult — render the output .block file
//
// # Main packages
//
// [catalogue] — loads the block/variant definitions and exposes the
// name-order comparator every other package relies on for deterministic
// row ordering.
//
// [bstree] — the array-indexed B*-tree representation, clonable in one
// contiguous slice copy so search workers never share mutable state.
//
// [contour] — the horizontal skyline used by [packer] to place each B*-tree
// node without an explicit placement pass.
//
// [packer] — walks a B*-tree and assigns every node its packed (x, y)
// coordinates, then records the chip width, height and area on the tree.
//
// [cost] — the objective function: area-with-aspect-penalty blended with
// the integral non-linearity of block centers in sorted-name order.
//
// [perturb] — the three neighbourhood operators (rotate, swap, move) a
// Metropolis proposal draws from.
//
// [rng] — per-worker PCG streams, seeded from a run origin plus worker ID
// so concurrent workers never share generator state.
//
// [anneal] — the single-threaded SA kernel: Metropolis acceptance over a
// geometric cooling schedule. The multistart strategy runs it directly;
// tempering and parallel moves run their own Metropolis loops over the same
// anneal.Params.
//
// [ledger] — the one mutex-guarded best-solution record every worker
// compares against and writes to, paired with a non-blocking improvement
// event stream.
//
// [strategy] — dispatches to independent multistart, parallel tempering
// with replica exchange, or pooled parallel move generation.
//
// [blockio] — the .block input/output codec.
//
// [convergence] — a CSV writer draining the ledger's improvement stream.
//
// [config] — TOML-file-plus-flags run configuration.
//
// [observability] — optional hooks for search lifecycle and worker events.
//
// [errors] — the coded error taxonomy shared across every package above.
//
// [pipeline] — glues every package above into one end-to-end invocation for
// the CLI.
//
// [catalogue]: github.com/arvogrid/floorsa/pkg/catalogue
// [bstree]: github.com/arvogrid/floorsa/pkg/bstree
// [contour]: github.com/arvogrid/floorsa/pkg/contour
// [packer]: github.com/arvogrid/floorsa/pkg/packer
// [cost]: github.com/arvogrid/floorsa/pkg/cost
// [perturb]: github.com/arvogrid/floorsa/pkg/perturb
// [rng]: github.com/arvogrid/floorsa/pkg/rng
// [anneal]: github.com/arvogrid/floorsa/pkg/anneal
// [ledger]: github.com/arvogrid/floorsa/pkg/ledger
// [strategy]: github.com/arvogrid/floorsa/pkg/strategy
// [blockio]: github.com/arvogrid/floorsa/pkg/blockio
// [convergence]: github.com/arvogrid/floorsa/pkg/convergence
// [config]: github.com/arvogrid/floorsa/pkg/config
// [observability]: github.com/arvogrid/floorsa/pkg/observability
// [errors]: github.com/arvogrid/floorsa/pkg/errors
// [pipeline]: github.com/arvogrid/floorsa/pkg/pipeline
package pkg
