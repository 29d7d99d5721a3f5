package domain

// Policy centralizes capability checks so role/ownership branching is not
// scattered across handlers. Services consult it once per mutation.
type Policy struct{}

// CanCreateProduct allows farmers and admins to list products.
func (Policy) CanCreateProduct(actor *User) bool {
	if actor == nil {
		return false
	}
	return actor.Role == RoleFarmer || actor.Role == RoleAdmin
}

// CanMutateProduct allows the owning farmer or an admin to update or delete
// a product.
func (Policy) CanMutateProduct(actor *User, ownerID string) bool {
	if actor == nil {
		return false
	}
	if actor.Role == RoleAdmin {
		return true
	}
	return actor.Role == RoleFarmer && actor.ID == ownerID
}

// CanManageUser allows a user to mutate their own record, with an admin
// override.
func (Policy) CanManageUser(actor *User, targetID string) bool {
	if actor == nil {
		return false
	}
	return actor.Role == RoleAdmin || actor.ID == targetID
}

// CanAdminister reports whether the actor holds the admin role.
func (Policy) CanAdminister(actor *User) bool {
	return actor != nil && actor.Role == RoleAdmin
}
