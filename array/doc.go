// Package array provides immutable, lazily dispatched device arrays.
//
// # Overview
//
// A Handle is a fixed-shape numeric array value tagged with a placement
// (the CPU or an accelerator). Constructing or transforming handles
// returns immediately: the work is recorded as a pending node on the
// placement's compute stream. Only reading concrete values (At, ToHost,
// or an implicit cross-placement copy) forces materialization, which
// happens exactly once per handle and blocks until the stream has run
// the pending chain.
//
// # Basic Usage
//
//	rt := array.NewRuntime()
//	defer rt.Close()
//
//	a, _ := array.Range(6, array.Int32, device.CPU(), rt)
//	b, _ := array.Range(6, array.Int32, device.Accelerator(0), rt)
//
//	sum, _ := a.Add(b)          // pending, returns immediately
//	host, _ := sum.ToHost()     // forces materialization
//	fmt.Println(host.Int32s())  // [0 2 4 6 8 10]
//
// # Immutability
//
// Handles never mutate in place. Set returns a new handle with a
// copied-and-modified buffer; the original is untouched and remains
// safe to share across goroutines without locking.
//
// # Broadcasting and Promotion
//
// Binary operations follow NumPy broadcasting rules. Mixed dtypes
// promote per PromoteTypes: the floating kind dominates, and within a
// kind the wider type wins.
//
// # Errors
//
// Contract violations (bad shapes, out-of-range indices, incompatible
// scalar types, non-broadcastable operands) are reported eagerly at the
// violating call as wrapped sentinel errors, never deferred to
// materialization time.
package array
