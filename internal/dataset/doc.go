// Package dataset generates labeled image datasets in batch.
//
// A YAML config names the output directory, the sample count, a base seed
// and the per-image engine settings. Generate renders every sample on a
// bounded worker pool and writes:
//
//	<output>/images/<id>.png
//	<output>/labels/<id>.json
//	<output>/previews/<id>.png           (previews: true)
//	<output>/crops/<id>_<n>_<category>.png (crops.enabled: true)
//	<output>/manifest.json
//
// IDs are name-based UUIDs derived from each sample's seed, so regenerating
// with the same base seed reproduces the same files.
package dataset
