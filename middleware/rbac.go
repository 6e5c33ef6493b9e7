package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-pms/models"
	"hotel-pms/utils"
)

// Permissions are "<area>.<action>".
const (
	PermRoomsView       = "rooms.view"
	PermRoomsCreate     = "rooms.create"
	PermRoomsEdit       = "rooms.edit"
	PermRoomsDelete     = "rooms.delete"
	PermRoomsEditStatus = "rooms.editStatus"

	PermReservationsView   = "reservations.view"
	PermReservationsCreate = "reservations.create"
	PermReservationsEdit   = "reservations.edit"

	PermStaysCheckIn  = "stays.checkin"
	PermStaysCheckOut = "stays.checkout"
	PermGuestsView    = "guests.view"

	PermLedgerView   = "ledger.view"
	PermLedgerCreate = "ledger.create"

	PermCatalogView   = "catalog.view"
	PermCatalogCreate = "catalog.create"
	PermCatalogEdit   = "catalog.edit"

	PermOrdersView   = "orders.view"
	PermOrdersCreate = "orders.create"
	PermOrdersEdit   = "orders.edit"

	PermAuditView   = "audit.view"
	PermUsersCreate = "users.create"
)

var allPerms = []string{
	PermRoomsView, PermRoomsCreate, PermRoomsEdit, PermRoomsDelete, PermRoomsEditStatus,
	PermReservationsView, PermReservationsCreate, PermReservationsEdit,
	PermStaysCheckIn, PermStaysCheckOut, PermGuestsView,
	PermLedgerView, PermLedgerCreate,
	PermCatalogView, PermCatalogCreate, PermCatalogEdit,
	PermOrdersView, PermOrdersCreate, PermOrdersEdit,
	PermAuditView, PermUsersCreate,
}

var rolePerms = map[models.UserRole]map[string]bool{
	models.RoleOwner: set(allPerms...),
	models.RoleAdmin: set(allPerms...),
	models.RoleFrontdesk: set(
		PermRoomsView, PermRoomsEditStatus,
		PermReservationsView, PermReservationsCreate, PermReservationsEdit,
		PermStaysCheckIn, PermStaysCheckOut, PermGuestsView,
		PermLedgerView, PermLedgerCreate,
		PermCatalogView,
		PermOrdersView, PermOrdersCreate, PermOrdersEdit,
	),
	models.RoleRestaurant: set(
		PermRoomsView, PermGuestsView,
		PermCatalogView,
		PermOrdersView, PermOrdersCreate, PermOrdersEdit,
	),
}

func set(perms ...string) map[string]bool {
	m := make(map[string]bool, len(perms))
	for _, p := range perms {
		m[p] = true
	}
	return m
}

// HasPermission reports whether role grants perm. Unknown roles grant nothing.
func HasPermission(role models.UserRole, perm string) bool {
	return rolePerms[role][perm]
}

// RequirePermission must run after JWTAuth.
func RequirePermission(perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.UserRole(c.GetString(KeyRole))
		if !HasPermission(role, perm) {
			utils.JSONError(c, http.StatusForbidden, "forbidden", "missing permission "+perm, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
