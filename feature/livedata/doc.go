// Package livedata implements the live park data pipeline: synchronization
// from three heterogeneous upstream sources into a canonical persisted model,
// and a cached, gracefully degrading read path over it.
//
// # Write path
//
// The Orchestrator runs a full pass on a fixed period. Each pass fans out one
// task per enabled source; the tasks run concurrently and are fully failure
// isolated. Within a source, parks are synced sequentially with linear-backoff
// retries, and the source's SyncStatus row is updated once per pass.
// Canonicalized records land in the Repository through idempotent upserts
// keyed by natural business keys.
//
// # Read path
//
// LiveDataCache is the only read surface exposed to the rest of the
// application. Reads check a TTL'd in-memory entry, fall through to the
// repository, and degrade to conservative defaults when both miss. Crowd
// predictions are the single read that surfaces errors; every other read
// never fails.
//
// # Bulk import
//
// CrowdImporter backfills a year of scraped crowd calendar data per park,
// bypassing the cache and reporting progress through a callback.
package livedata
