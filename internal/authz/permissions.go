package authz

import "sort"

// Permission keys follow the "<resource>.<action>" convention, e.g.
// "aircraft.delete" or "tickets.edit".
func PermissionKey(resource Resource, action Action) string {
	return string(resource) + "." + string(action)
}

// Permissions returns the sorted permission set granted to role. The set is
// derived from the policy table so the two can never disagree. An invalid
// role still receives the public grants, matching Can.
func Permissions(role Role) []string {
	var keys []string
	for resource, actions := range policy {
		for action := range actions {
			if Can(role, resource, action) {
				keys = append(keys, PermissionKey(resource, action))
			}
		}
	}
	sort.Strings(keys)
	return keys
}

// HasPermission reports whether role holds the permission identified by key.
func HasPermission(role Role, key string) bool {
	for resource, actions := range policy {
		for action := range actions {
			if PermissionKey(resource, action) == key {
				return Can(role, resource, action)
			}
		}
	}
	return false
}
