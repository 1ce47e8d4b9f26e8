// Package domain describes self-issued "viewed project" attestations.
package domain

import "errors"

// ViewSchemaUID identifies the project-view attestation schema.
const ViewSchemaUID = "0x7889a09fb295b0a0c63a3d7903c4f00f7896cca4fa64d2c1313f8547390b7d39"

var ErrInvalidAddress = errors.New("invalid wallet address")

// Attestation records that Attester opened ProjectID. Recipient is the
// attester itself. Data is the ABI encoding of (address, projectId).
type Attestation struct {
	ID        string `json:"id"`
	Schema    string `json:"schema"`
	Attester  string `json:"attester"`
	Recipient string `json:"recipient"`
	ProjectID string `json:"projectId"`
	Data      string `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

// Summary aggregates a user's attestations.
type Summary struct {
	Attestations        []Attestation `json:"attestations"`
	AttestationCount    int           `json:"attestationCount"`
	UniqueProjectsCount int           `json:"uniqueProjectsCount"`
	UniqueProjectIDs    []string      `json:"uniqueProjectIds"`
}

// Summarize keeps first-seen order for the unique ids.
func Summarize(list []Attestation) Summary {
	seen := make(map[string]bool, len(list))
	ids := make([]string, 0, len(list))
	for _, a := range list {
		if !seen[a.ProjectID] {
			seen[a.ProjectID] = true
			ids = append(ids, a.ProjectID)
		}
	}
	if list == nil {
		list = []Attestation{}
	}
	return Summary{
		Attestations:        list,
		AttestationCount:    len(list),
		UniqueProjectsCount: len(ids),
		UniqueProjectIDs:    ids,
	}
}
