package authdomain

// Role is a staff member's permission level in the admin panel.
type Role string

const (
	RoleViewer    Role = "viewer"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

var roleRank = map[Role]int{
	RoleViewer:    1,
	RoleOrganizer: 2,
	RoleAdmin:     3,
}

// IsValid checks if the role is a valid value.
func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// Allows reports whether r grants at least the permissions of required.
func (r Role) Allows(required Role) bool {
	return r.IsValid() && roleRank[r] >= roleRank[required]
}

func (r Role) String() string {
	return string(r)
}
