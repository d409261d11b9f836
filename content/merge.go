package content

import "encoding/json"

// mergePatch implements RFC 7396-like JSON merge-patch semantics over raw
// JSON trees: objects merge key by key, a null value deletes the key, and
// any non-object value (including arrays) replaces the target wholesale.
// This is the overlay rule used when an including file's JSON overlays the
// JSON of the files it includes.
//
// No JSON library in the reference corpus provides merge-patch semantics
// (the corpus does not use a JSON library at all - it parses a proprietary
// binary format); this is a direct, from-scratch implementation against the
// standard library's json.RawMessage, which is the idiomatic representation
// for "JSON value I have not decided the shape of yet".
func mergePatch(target, patch json.RawMessage) (json.RawMessage, error) {
	if len(patch) == 0 {
		return target, nil
	}

	var patchVal any
	if err := json.Unmarshal(patch, &patchVal); err != nil {
		return nil, err
	}
	patchObj, patchIsObj := patchVal.(map[string]any)
	if !patchIsObj {
		// Non-object patch replaces the target wholesale.
		return patch, nil
	}

	var targetVal any
	if len(target) > 0 {
		if err := json.Unmarshal(target, &targetVal); err != nil {
			return nil, err
		}
	}
	targetObj, targetIsObj := targetVal.(map[string]any)
	if !targetIsObj {
		targetObj = map[string]any{}
	}

	merged := mergeValue(targetObj, patchObj)
	return json.Marshal(merged)
}

// mergeValue recursively applies patch onto target per RFC 7396.
func mergeValue(target, patch map[string]any) map[string]any {
	if target == nil {
		target = map[string]any{}
	}
	result := make(map[string]any, len(target))
	for k, v := range target {
		result[k] = v
	}
	for k, pv := range patch {
		if pv == nil {
			delete(result, k)
			continue
		}
		pvObj, pvIsObj := pv.(map[string]any)
		if !pvIsObj {
			result[k] = pv
			continue
		}
		tvObj, _ := result[k].(map[string]any)
		result[k] = mergeValue(tvObj, pvObj)
	}
	return result
}
