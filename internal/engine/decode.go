package engine

import (
	"encoding/json"
	"fmt"

	"github.com/reelcraft/api/internal/model"
)

// DecodeAction turns a wire envelope into a typed action. Unknown action
// types and malformed payloads are boundary errors; once decoded, applying
// the action can no longer fail.
func DecodeAction(env model.ActionEnvelope) (Action, error) {
	var (
		action Action
		err    error
	)
	switch env.Type {
	case ActionAddAsset:
		action, err = decodePayload[AddAsset](env.Payload)
	case ActionRemoveAsset:
		action, err = decodePayload[RemoveAsset](env.Payload)
	case ActionAddClip:
		action, err = decodePayload[AddClip](env.Payload)
	case ActionUpdateClip:
		action, err = decodePayload[UpdateClip](env.Payload)
	case ActionDeleteClip:
		action, err = decodePayload[DeleteClip](env.Payload)
	case ActionSplitClip:
		action, err = decodePayload[SplitClip](env.Payload)
	case ActionDuplicateClips:
		action, err = decodePayload[DuplicateClips](env.Payload)
	case ActionSetCurrentTime:
		action, err = decodePayload[SetCurrentTime](env.Payload)
	case ActionSetIsPlaying:
		action, err = decodePayload[SetIsPlaying](env.Payload)
	case ActionSetVolume:
		action, err = decodePayload[SetVolume](env.Payload)
	case ActionSetIsMuted:
		action, err = decodePayload[SetIsMuted](env.Payload)
	case ActionSetSelection:
		action, err = decodePayload[SetSelection](env.Payload)
	case ActionSelectAllClips:
		action = SelectAllClips{}
	case ActionClearSelection:
		action = ClearSelection{}
	case ActionSetPixelsPerSecond:
		action, err = decodePayload[SetPixelsPerSecond](env.Payload)
	case ActionStartRecording:
		action = StartRecording{}
	case ActionStopRecording:
		action = StopRecording{}
	default:
		return nil, fmt.Errorf("unknown action type %q", env.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", env.Type, err)
	}
	return action, nil
}

func decodePayload[T Action](raw json.RawMessage) (T, error) {
	var out T
	if len(raw) == 0 {
		return out, fmt.Errorf("missing payload")
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}
