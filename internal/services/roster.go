package services

import (
	"context"
	"fleet-dispatch-service/internal/domain"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RegisterMember adds a person to the staffing pool. An empty specificType
// falls back to the role's default; any other value must belong to the fixed
// set permitted for that role.
func (d *Dispatcher) RegisterMember(name string, role domain.Role, specificType string) (domain.TeamMember, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.TeamMember{}, fmt.Errorf("register member: name must be non-empty")
	}
	if !domain.ValidRole(role) {
		return domain.TeamMember{}, domain.ErrInvalidRole
	}
	if specificType == "" {
		specificType = domain.DefaultSpecificType(role)
	} else if !domain.AllowedSpecificType(role, specificType) {
		return domain.TeamMember{}, domain.ErrInvalidSpecificType
	}

	member := domain.TeamMember{
		ID:           uuid.NewString(),
		Name:         name,
		Role:         role,
		SpecificType: specificType,
		Active:       true,
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.members = append(d.members, member)
	d.persistLocked()

	return member, nil
}

// RemoveMember deletes a roster record and cascades the removal through every
// fleet crew that holds the identifier.
func (d *Dispatcher) RemoveMember(memberID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := d.memberIndexLocked(memberID)
	if idx < 0 {
		return domain.ErrMemberNotFound
	}
	d.members = append(d.members[:idx], d.members[idx+1:]...)

	for i := range d.fleets {
		d.fleets[i].MemberIDs = removeID(d.fleets[i].MemberIDs, memberID)
	}
	d.persistLocked()

	return nil
}

// ToggleMemberStatus flips a member's availability. Manual deactivation
// records the reason "Manual"; reactivation clears the reason.
func (d *Dispatcher) ToggleMemberStatus(memberID string) (domain.TeamMember, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := d.memberIndexLocked(memberID)
	if idx < 0 {
		return domain.TeamMember{}, domain.ErrMemberNotFound
	}

	m := &d.members[idx]
	if m.Active {
		m.Active = false
		m.StatusReason = "Manual"
	} else {
		m.Active = true
		m.StatusReason = ""
	}
	d.persistLocked()

	return *m, nil
}

// ChangeMemberRole updates a member's role and resets the specific type to the
// new role's default.
func (d *Dispatcher) ChangeMemberRole(memberID string, role domain.Role) (domain.TeamMember, error) {
	if !domain.ValidRole(role) {
		return domain.TeamMember{}, domain.ErrInvalidRole
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	idx := d.memberIndexLocked(memberID)
	if idx < 0 {
		return domain.TeamMember{}, domain.ErrMemberNotFound
	}

	m := &d.members[idx]
	m.Role = role
	m.SpecificType = domain.DefaultSpecificType(role)
	d.persistLocked()

	return *m, nil
}

// Members returns the roster in registration order.
func (d *Dispatcher) Members() []domain.TeamMember {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.TeamMember, len(d.members))
	copy(out, d.members)
	return out
}

// AvailableMembers returns roster members not present in any fleet crew,
// optionally restricted to active ones.
func (d *Dispatcher) AvailableMembers(activeOnly bool) []domain.TeamMember {
	d.mu.Lock()
	defer d.mu.Unlock()

	assigned := make(map[string]struct{})
	for _, f := range d.fleets {
		for _, id := range f.MemberIDs {
			assigned[id] = struct{}{}
		}
	}

	out := make([]domain.TeamMember, 0, len(d.members))
	for _, m := range d.members {
		if _, ok := assigned[m.ID]; ok {
			continue
		}
		if activeOnly && !m.Active {
			continue
		}
		out = append(out, m)
	}

	return out
}

// IngestAvailability forwards raw schedule text to the availability
// collaborator and applies the returned absences to the roster. The update is
// asymmetric: matched members are set inactive with the reported reason,
// every other member keeps its previous state. Any failure of the
// external call leaves the roster unchanged.
func (d *Dispatcher) IngestAvailability(ctx context.Context, schedule string) (int, error) {
	d.mu.Lock()
	if d.rosterInFlight {
		d.mu.Unlock()
		return 0, domain.ErrIngestionInFlight
	}
	d.rosterInFlight = true
	d.mu.Unlock()

	absences, err := d.parser.ParseAvailability(ctx, schedule)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.rosterInFlight = false

	if err != nil {
		return 0, fmt.Errorf("ingest availability: %w", err)
	}

	updated := 0
	for i := range d.members {
		m := &d.members[i]
		for _, a := range absences {
			if !nameMatches(m.Name, a.Name) {
				continue
			}
			m.Active = false
			m.StatusReason = a.Reason
			updated++
			break
		}
	}
	if updated > 0 {
		d.persistLocked()
	}

	return updated, nil
}

// nameMatches applies the case- and accent-insensitive substring policy in
// both directions, so a schedule export that drops diacritics still matches
// the stored roster name. First match in roster iteration order wins;
// ambiguous names are not disambiguated.
func nameMatches(memberName, absenceName string) bool {
	m := foldName(memberName)
	a := foldName(absenceName)
	if m == "" || a == "" {
		return false
	}
	return strings.Contains(m, a) || strings.Contains(a, m)
}

// foldName lowercases a name and strips combining marks ("João" -> "joao").
func foldName(s string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(folder, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

func (d *Dispatcher) memberIndexLocked(memberID string) int {
	for i := range d.members {
		if d.members[i].ID == memberID {
			return i
		}
	}
	return -1
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
