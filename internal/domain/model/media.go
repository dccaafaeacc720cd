package model

// MediaBlob is an opaque binary payload with its MIME type. Blobs are
// immutable once created; they are produced either by the caller (an
// uploaded file) or by the remote service (a generated artifact).
type MediaBlob struct {
	Data     []byte
	MIMEType string
}

// IsImage reports whether the blob carries image data.
func (b MediaBlob) IsImage() bool {
	return len(b.MIMEType) > 6 && b.MIMEType[:6] == "image/"
}

// EditRequest asks the model to transform an existing image.
type EditRequest struct {
	Image  MediaBlob
	Prompt string
}

// GenerationRequest asks the model for a brand-new image.
type GenerationRequest struct {
	Prompt string
}

// VideoJobRequest asks for a generated video, optionally seeded with a
// starting image.
type VideoJobRequest struct {
	Prompt    string
	SeedImage *MediaBlob
}

// VideoOperation is the handle for an in-flight video generation job as
// reported by the remote service. Each status query returns a fresh
// VideoOperation; callers must always poll with the latest one and never
// reuse a stale handle. The value is replaced wholesale, never mutated.
type VideoOperation struct {
	Name          string
	Done          bool
	ResultURI     string
	ResultMIME    string
	FailureReason string
}
