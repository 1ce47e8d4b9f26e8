package domain

import (
	"encoding/json"
	"fmt"
)

// CollectionVersion is the only persisted layout this build reads or writes.
const CollectionVersion = 1

type collectionEnvelope struct {
	Version  int       `json:"version"`
	Projects []Project `json:"projects"`
}

// EncodeCollection serialises projects in storage order.
func EncodeCollection(projects []Project) ([]byte, error) {
	if projects == nil {
		projects = []Project{}
	}
	data, err := json.Marshal(collectionEnvelope{Version: CollectionVersion, Projects: projects})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal projects: %w", err)
	}
	return data, nil
}

// DecodeCollection parses a value written by EncodeCollection. Any other
// shape, including a bare JSON array, is rejected.
func DecodeCollection(data []byte) ([]Project, error) {
	var env collectionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedVersion, err)
	}
	if env.Version != CollectionVersion {
		return nil, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, env.Version)
	}
	if env.Projects == nil {
		env.Projects = []Project{}
	}
	return env.Projects, nil
}
