package domain

import "time"

// RenderJobStatus enumerates render job lifecycle states.
type RenderJobStatus string

const (
	RenderJobQueued    RenderJobStatus = "QUEUED"
	RenderJobRunning   RenderJobStatus = "RUNNING"
	RenderJobSucceeded RenderJobStatus = "SUCCEEDED"
	RenderJobFailed    RenderJobStatus = "FAILED"
)

// RenderJob queues one order item for final artwork rendering.
type RenderJob struct {
	ID           string
	OrderItemID  string
	Status       RenderJobStatus
	Attempts     int
	ErrorMessage string
	SkippedSlots []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ComposedAssetKind distinguishes manufacturing output from previews.
type ComposedAssetKind string

const (
	ComposedAssetFinal   ComposedAssetKind = "FINAL"
	ComposedAssetPreview ComposedAssetKind = "PREVIEW"
	ComposedAssetBundle  ComposedAssetKind = "BUNDLE"
)

// ComposedAsset is one artifact produced by the composition worker.
type ComposedAsset struct {
	ID          string
	OrderItemID string
	Kind        ComposedAssetKind
	StorageKey  string
	MIME        string
	Bytes       int64
	Width       int
	Height      int
	CreatedAt   time.Time
}
