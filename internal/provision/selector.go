package provision

// GroupID names one operation group.
type GroupID string

const (
	Update        GroupID = "update"
	Essentials    GroupID = "essentials"
	Configuration GroupID = "configuration"
	Monitoring    GroupID = "monitoring"
	NetworkTools  GroupID = "network-tools"
	Database      GroupID = "database"
	GPS           GroupID = "gps"
)

// CanonicalOrder is the fixed order groups run in. Groups do not depend on each
// other; the order is a convention (update the index first, essentials before
// extras), not a correctness requirement.
var CanonicalOrder = []GroupID{
	Update,
	Essentials,
	Configuration,
	Monitoring,
	NetworkTools,
	Database,
	GPS,
}

// Selection is the caller's choice of which groups to run: everything, or an
// explicit set. It captures intent only; Resolve turns it into the run order.
type Selection struct {
	All bool
	IDs []GroupID
}

// SelectAll selects every known group.
func SelectAll() Selection { return Selection{All: true} }

// SelectOne selects a single group.
func SelectOne(id GroupID) Selection { return Selection{IDs: []GroupID{id}} }

// SelectSet selects an explicit set of groups.
func SelectSet(ids ...GroupID) Selection { return Selection{IDs: ids} }

// Resolve returns the groups to run, always in canonical order regardless of the
// order ids were picked in. Duplicates collapse and unknown ids are dropped. This
// is a pure function; prompting for a Selection lives elsewhere.
func (s Selection) Resolve() []GroupID {
	if s.All {
		out := make([]GroupID, len(CanonicalOrder))
		copy(out, CanonicalOrder)
		return out
	}

	chosen := make(map[GroupID]bool, len(s.IDs))
	for _, id := range s.IDs {
		chosen[id] = true
	}

	var out []GroupID
	for _, id := range CanonicalOrder {
		if chosen[id] {
			out = append(out, id)
		}
	}
	return out
}

// ParseGroupID maps a user-supplied name onto a known GroupID.
func ParseGroupID(name string) (GroupID, bool) {
	for _, id := range CanonicalOrder {
		if string(id) == name {
			return id, true
		}
	}
	return "", false
}
