package memory

import (
	"sort"

	"rgbfaucet/contexts/asset-distribution/faucet-service/domain/entities"
	"rgbfaucet/contexts/asset-distribution/faucet-service/ports"
)

// Groups is the process-lifetime asset-group configuration. Immutable after
// construction, so it is safe to share across admissions and cycles.
type Groups struct {
	groups map[string]entities.AssetGroup
	names  []string
}

func NewGroups(groups map[string]entities.AssetGroup) *Groups {
	copied := make(map[string]entities.AssetGroup, len(groups))
	names := make([]string, 0, len(groups))
	for name, group := range groups {
		copied[name] = group
		names = append(names, name)
	}
	sort.Strings(names)
	return &Groups{groups: copied, names: names}
}

func (g *Groups) Group(name string) (entities.AssetGroup, bool) {
	group, ok := g.groups[name]
	return group, ok
}

func (g *Groups) GroupNames() []string {
	return append([]string(nil), g.names...)
}

var _ ports.GroupConfig = (*Groups)(nil)
