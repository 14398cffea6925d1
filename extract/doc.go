// Package extract provides pipeline orchestration for pulling company
// records out of unstructured text.
//
// The Pipeline type manages the extraction workflow, including:
//   - Segmenting long documents into manageable chunks
//   - Running each chunk through a record extractor
//   - Aggregating per-chunk results into batches
//
// Chunk failures are logged and skipped so a single bad chunk does not
// sink the whole document. Multi-document extraction is performed
// concurrently using a worker pool.
package extract
