package parks

import "errors"

// ErrUnknown is returned when a park ID has no entry in the registry.
// This is a configuration error: callers must not retry it.
var ErrUnknown = errors.New("unknown park id")

// Mapping translates an internal park identifier to each external source's
// identifier. The table is static and loaded once at startup.
type Mapping struct {
	// ID is the internal park identifier used everywhere in this codebase.
	ID string
	// Name is the display name.
	Name string
	// WikiEntityID is the live-data API entity UUID.
	WikiEntityID string
	// QueueTimesID is the numeric park ID on the crowd forecast service.
	// The mapping is a fixed lookup, not derived.
	QueueTimesID int
	// ScrapeSlug is the path segment on the crowd calendar scrape target.
	ScrapeSlug string
}

var defaultMappings = []Mapping{
	{
		ID:           "magic-kingdom",
		Name:         "Magic Kingdom",
		WikiEntityID: "75ea578a-adc8-4116-a54d-dccb60765ef9",
		QueueTimesID: 6,
		ScrapeSlug:   "magic-kingdom",
	},
	{
		ID:           "epcot",
		Name:         "EPCOT",
		WikiEntityID: "47f90d2c-e191-4239-a466-5892ef59a88b",
		QueueTimesID: 5,
		ScrapeSlug:   "epcot",
	},
	{
		ID:           "hollywood-studios",
		Name:         "Hollywood Studios",
		WikiEntityID: "288747d1-8b4f-4a64-867e-ea7c9b27bad8",
		QueueTimesID: 7,
		ScrapeSlug:   "hollywood-studios",
	},
	{
		ID:           "animal-kingdom",
		Name:         "Animal Kingdom",
		WikiEntityID: "1c84a229-8862-4648-9c71-378ddd2c7693",
		QueueTimesID: 8,
		ScrapeSlug:   "animal-kingdom",
	},
}

// Registry is a pure lookup over the park mapping table.
type Registry struct {
	byID  map[string]Mapping
	order []Mapping
}

// NewRegistry returns the registry for the default supported parks.
func NewRegistry() *Registry {
	return NewRegistryWith(defaultMappings)
}

// NewRegistryWith builds a registry from an explicit mapping table.
func NewRegistryWith(mappings []Mapping) *Registry {
	r := &Registry{byID: make(map[string]Mapping, len(mappings))}
	for _, m := range mappings {
		if _, dup := r.byID[m.ID]; dup {
			continue
		}
		r.byID[m.ID] = m
		r.order = append(r.order, m)
	}
	return r
}

// Lookup resolves an internal park ID.
func (r *Registry) Lookup(id string) (Mapping, bool) {
	m, ok := r.byID[id]
	return m, ok
}

// All returns every mapping in declaration order.
func (r *Registry) All() []Mapping {
	out := make([]Mapping, len(r.order))
	copy(out, r.order)
	return out
}

// IDs returns every internal park ID in declaration order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.order))
	for _, m := range r.order {
		ids = append(ids, m.ID)
	}
	return ids
}
