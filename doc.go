// ge is a data-quality validation toolkit. It contains the core value types
// shared by every layer of the tool, and documentation to assist in wiring
// the pieces together.
//
// The basic flow is checkpoint -> batch -> suite -> result.
//
// 1. DataFrame
//
//    The ge.DataFrame is the uniform in-memory representation of one slice of
//    tabular data. We know you, and we know your data is everywhere - local
//    CSV files, S3 buckets, Excel workbooks handed over by a vendor, frames
//    already built in memory by other code. Whatever the origin, the
//    datasource layer loads it into a DataFrame so that expectations can be
//    evaluated without caring where the bytes came from. Columns are ordered,
//    names are unique and every cell is one of a handful of typed scalar
//    values (see frame.go).
//
// 2. BatchKwargs / Batch
//
//    BatchKwargs describe where and how to load one batch of data (a path, an
//    s3 URL, or an existing frame, plus reader overrides). The datasource
//    resolves them into a Batch: the loaded frame plus provenance markers
//    such as load time and a content fingerprint.
//
// 3. Expectation suites
//
//    A suite (package suite) is a named list of assertions about a frame.
//    Evaluating a suite against a batch produces per-expectation results and
//    aggregate statistics.
//
// 4. Checkpoints
//
//    A checkpoint (package checkpoint) bundles one or more batches with one
//    or more suites and names the validation operator that should run them.
//    The project context (package project) ties it all together: it locates
//    the project directory, loads configuration, runs operators and persists
//    validation results to a store (package store).

package ge
