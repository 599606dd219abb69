package model

// Drag payload marker types. Two distinct types so a drop handler can
// discriminate asset-drops from clip-move-drops without ambiguity.
const (
	DragTypeAsset = "application/x.reelcraft.asset"
	DragTypeClip  = "application/x.reelcraft.clip"
)

// AssetDragPayload is the payload of an asset-to-timeline drag.
type AssetDragPayload struct {
	AssetID string `json:"assetId"`
}

// ClipDragPayload is the payload of a clip-to-clip move drag: the full clip,
// serialized.
type ClipDragPayload struct {
	Clip Clip `json:"clip"`
}
