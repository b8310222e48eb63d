package authz

// Resource is a domain entity managed through the console screens.
type Resource string

const (
	ResourceFlights            Resource = "flights"
	ResourceAircraft           Resource = "aircraft"
	ResourceAirports           Resource = "airports"
	ResourceAircraftTypes      Resource = "aircraft_types"
	ResourceFlightTypes        Resource = "flight_types"
	ResourceEmployeeCategories Resource = "employee_categories"
	ResourceFlightCrews        Resource = "flight_crews"
	ResourcePassengers         Resource = "passengers"
	ResourceEmployees          Resource = "employees"
	ResourceTickets            Resource = "tickets"
	ResourceBookings           Resource = "bookings"
)

// Resources lists every resource covered by the policy, in screen order.
func Resources() []Resource {
	return []Resource{
		ResourceFlights,
		ResourceAircraft,
		ResourceAirports,
		ResourceAircraftTypes,
		ResourceFlightTypes,
		ResourceEmployeeCategories,
		ResourceFlightCrews,
		ResourcePassengers,
		ResourceEmployees,
		ResourceTickets,
		ResourceBookings,
	}
}

// Action is one of the four CRUD verbs the policy speaks about.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Actions lists the four policy verbs.
func Actions() []Action {
	return []Action{ActionView, ActionCreate, ActionEdit, ActionDelete}
}

// grant is one cell of the policy table. public grants skip authentication
// entirely; otherwise the subject's role must be a member of roles.
type grant struct {
	public bool
	roles  []Role
}

var (
	public    = grant{public: true}
	anyAuthed = grant{roles: []Role{RoleAdmin, RoleModerator, RoleUser}}
	adminOnly = grant{roles: []Role{RoleAdmin}}
	adminMod  = grant{roles: []Role{RoleAdmin, RoleModerator}}
)

// policy is the single source of truth for who may do what. Per-resource
// capability checks are lookups into this table; there are deliberately no
// hand-written per-resource predicates that could drift from it.
//
// Note the asymmetry on passengers, tickets and bookings: edit (and for
// tickets/bookings, delete) is open to any authenticated role while listing
// is restricted to admins and moderators. That mirrors the upstream policy
// as shipped; see DESIGN.md.
var policy = map[Resource]map[Action]grant{
	ResourceFlights: {
		ActionView:   public,
		ActionCreate: adminOnly,
		ActionEdit:   adminOnly,
		ActionDelete: adminOnly,
	},
	ResourceAircraft: {
		ActionView:   adminMod,
		ActionCreate: adminOnly,
		ActionEdit:   adminOnly,
		ActionDelete: adminOnly,
	},
	ResourceAirports: {
		ActionView:   public,
		ActionCreate: adminOnly,
		ActionEdit:   adminOnly,
		ActionDelete: adminOnly,
	},
	ResourceAircraftTypes: {
		ActionView:   public,
		ActionCreate: adminOnly,
		ActionEdit:   adminOnly,
		ActionDelete: adminOnly,
	},
	ResourceFlightTypes: {
		ActionView:   public,
		ActionCreate: adminOnly,
		ActionEdit:   adminOnly,
		ActionDelete: adminOnly,
	},
	ResourceEmployeeCategories: {
		ActionView:   adminMod,
		ActionCreate: adminOnly,
		ActionEdit:   adminOnly,
		ActionDelete: adminOnly,
	},
	ResourceFlightCrews: {
		ActionView:   adminMod,
		ActionCreate: adminOnly,
		ActionEdit:   adminOnly,
		ActionDelete: adminOnly,
	},
	ResourcePassengers: {
		ActionView:   adminMod,
		ActionCreate: adminOnly,
		ActionEdit:   anyAuthed,
		ActionDelete: adminOnly,
	},
	ResourceEmployees: {
		ActionView:   adminMod,
		ActionCreate: adminMod,
		ActionEdit:   adminMod,
		ActionDelete: adminOnly,
	},
	ResourceTickets: {
		ActionView:   adminMod,
		ActionCreate: adminMod,
		ActionEdit:   anyAuthed,
		ActionDelete: anyAuthed,
	},
	ResourceBookings: {
		ActionView:   adminMod,
		ActionCreate: adminMod,
		ActionEdit:   anyAuthed,
		ActionDelete: anyAuthed,
	},
}

// Can reports whether a subject holding role may perform action on resource.
// A zero or unknown role is treated as an unauthenticated subject: only
// public grants apply. Unknown resources or actions always deny.
func Can(role Role, resource Resource, action Action) bool {
	actions, ok := policy[resource]
	if !ok {
		return false
	}
	g, ok := actions[action]
	if !ok {
		return false
	}
	if g.public {
		return true
	}
	return HasRole(role, g.roles...)
}

// Require returns a *PermissionError when role may not perform action on
// resource, nil otherwise. It is the pre-network gate used by the form and
// list engines.
func Require(role Role, resource Resource, action Action) error {
	if Can(role, resource, action) {
		return nil
	}
	return &PermissionError{Resource: resource, Action: action, Role: role}
}
