// Package archive provides an object-storage backed archive of raw upstream
// payloads.
//
// It wraps the MinIO Go client behind a narrow Client interface so the archive
// can be mocked in unit tests (see core/archive/mocks). The Store type layers
// the snapshot naming scheme and retention pruning on top.
//
// The archive is optional: when no endpoint is configured the orchestrator
// simply skips snapshotting. It exists so that a surprising canonical record
// can always be traced back to the exact bytes the upstream returned.
package archive
