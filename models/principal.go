package models

// Principal is the typed identity resolved once by the auth middleware
// and passed through context to downstream operations.
type Principal struct {
	ID        string `bson:"_id" json:"id"`
	Email     string `bson:"email" json:"email"`
	FirstName string `bson:"first_name,omitempty" json:"firstName,omitempty"`
	LastName  string `bson:"last_name,omitempty" json:"lastName,omitempty"`
	Role      string `bson:"role" json:"role"`
	IsAdmin   bool   `bson:"is_admin" json:"isAdmin"`
}

// Admin requires both the flag and the role, matching the stored profile
// shape checked before every admin operation.
func (p *Principal) Admin() bool {
	return p != nil && p.IsAdmin && p.Role == "admin"
}
