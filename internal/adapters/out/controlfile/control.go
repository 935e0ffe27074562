// Package controlfile loads the host-provided control document and order
// graph from disk. The control document is YAML: the acting user, the
// per-role openable stages, and the stage descriptions. The order graph is
// JSON in the marketplace export format.
package controlfile

import (
	"fmt"
	"os"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/role"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

// ControlDocument mirrors the control YAML layout.
type ControlDocument struct {
	CurrentUser struct {
		IDUser string `yaml:"idUser"`
	} `yaml:"currentUser"`

	Users []UserEntry `yaml:"users"`

	Steps []StepEntry `yaml:"steps"`
}

// UserEntry defines which stages a role may open.
type UserEntry struct {
	Type         string   `yaml:"type"`
	AllowedSteps []string `yaml:"allowedSteps"`
}

// StepEntry describes one stage for display purposes.
type StepEntry struct {
	ID          string `yaml:"id"`
	No          string `yaml:"no"`
	Description string `yaml:"description"`
}

// LoadControlDocument reads and parses the control YAML file.
func LoadControlDocument(path string) (*ControlDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read control document %s: %w", path, err)
	}

	var doc ControlDocument
	if err = yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse control document %s: %w", path, err)
	}

	if doc.CurrentUser.IDUser == "" {
		return nil, errs.NewValueIsRequiredError("currentUser.idUser")
	}

	return &doc, nil
}

// Actor returns the acting user's key.
func (d *ControlDocument) Actor() kernel.ActorKey {
	return kernel.ActorKey(d.CurrentUser.IDUser)
}

// OpenableStages converts the users section into the per-role openable
// table. Unknown role names and unknown stage IDs are rejected; a stale
// document must fail loudly rather than silently widen or narrow access.
func (d *ControlDocument) OpenableStages() (map[role.Role][]stage.Stage, error) {
	openable := make(map[role.Role][]stage.Stage, len(d.Users))

	for _, entry := range d.Users {
		r, err := role.FromString(entry.Type)
		if err != nil {
			return nil, err
		}

		stages := make([]stage.Stage, 0, len(entry.AllowedSteps))
		for _, id := range entry.AllowedSteps {
			s, stageErr := stage.FromID(id)
			if stageErr != nil {
				return nil, stageErr
			}
			stages = append(stages, s)
		}
		openable[r] = stages
	}

	return openable, nil
}
