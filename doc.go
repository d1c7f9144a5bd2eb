// Package wick normal-orders strings of second-quantized operators with
// Wick's theorem.
//
// A term is a coefficient times an ordered string of creation (a+) and
// annihilation (a) operators on labelled indices, together with the
// Kronecker deltas collected so far. Wick's theorem rewrites such a term as
// a sum of normal-ordered terms, every creator to the left of every
// annihilator, plus all contractions between them.
//
// # Architecture Overview
//
// The wick module consists of several key components:
//
//   - core: Index, Operator, Delta, Term and Sum, the values every other
//     package works on
//   - contract: the two contraction algorithms, full contraction (vacuum
//     expectation value) and general expansion, behind a mode Catalog
//   - engine: Contractor, which dispatches one term by mode and vacuum, and
//     RunBatch, which computes independent terms concurrently
//   - compiler: the .wick DSL and YAML front ends and program checks
//   - model: result documents in JSON and the binary .wres format
//   - render: LaTeX and tensor notation
//
// # Basic Usage
//
//	p, q := core.GeneralIndex("p"), core.GeneralIndex("q")
//	term := core.NewTerm(1, core.Ann(p), core.Cre(q))
//
//	c := engine.New(term, &engine.Options{Mode: contract.ModeGeneral})
//	if err := c.Compute(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(render.Sum(c.Result(), render.FormatTensor))
//	// -a^{q}_{p} + \delta^{p}_{q}
//
// From the command line:
//
//	wick run examples/vev.wick --format tensor
//	wick run examples/vev.yaml --full --out vev.wres
//	wick show vev-vev4.wres
//
// # Package Structure
//
//   - core: operator algebra values and term sums
//   - contract: pairing enumeration, crossing signs and both algorithms
//   - engine: contractor, batch runner, tracing and metrics
//   - compiler: program parsing and checks
//   - model: result persistence
//   - render: textual output
//   - config: CLI configuration file
//   - internal/logger, internal/telemetry: zap and OpenTelemetry setup
//   - cmd/wick: command-line tool (run, check, show, perf, version)
package wick
