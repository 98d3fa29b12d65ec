package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"ciso-sim/internal/domain"
)

const rosterFile = "team_roster.yaml"

type rosterPayload struct {
	Members []domain.CharacterSpec `yaml:"members"`
}

// LoadRoster reads the hireable roster from team_roster.yaml. Entries keep
// their raw optional fields; materialization (and the 50-defaults) happens
// when a team is built from them.
func LoadRoster(dataDir string) ([]domain.CharacterSpec, error) {
	raw, err := os.ReadFile(filepath.Join(dataDir, rosterFile))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rosterFile, err)
	}
	var payload rosterPayload
	if err := yaml.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidRoster, rosterFile, err)
	}
	if len(payload.Members) == 0 {
		return nil, fmt.Errorf("%w: %s has no members", domain.ErrInvalidRoster, rosterFile)
	}
	for i, member := range payload.Members {
		if member.Name == "" {
			return nil, fmt.Errorf("%w: member %d has no name", domain.ErrInvalidRoster, i)
		}
	}
	return payload.Members, nil
}

// RosterKey is the identifier members are selected by: the explicit id when
// present, otherwise the name.
func RosterKey(spec domain.CharacterSpec) string {
	if spec.ID != "" {
		return spec.ID
	}
	return spec.Name
}
