package gallery

import "event-media/internal/mediatypes"

// MediaAsset represents one object discovered during a listing pass.
//
// RemoteKey is the sole identity: two assets with equal keys are the same
// object. Assets are never mutated after discovery; they leave the in-memory
// collection only when the object store confirms a deletion.
type MediaAsset struct {
	RemoteKey string               `json:"remoteKey"`
	URL       string               `json:"url"`
	Kind      mediatypes.AssetKind `json:"kind"`
}
