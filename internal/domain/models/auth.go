package models

import "github.com/golang-jwt/jwt/v5"

// TenantClaims is the JWT claims structure issued by the identity provider.
// The subject is the employee id; company_id carries the tenant partition.
type TenantClaims struct {
	jwt.RegisteredClaims
	CompanyID string `json:"company_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"` // "employee", "intern" or "admin"
}

// GetEmployeeID returns the employee id from the JWT subject claim.
func (c *TenantClaims) GetEmployeeID() string {
	return c.Subject
}

// GetScope returns the (company, employee) scope encoded in the claims.
func (c *TenantClaims) GetScope() Scope {
	return Scope{CompanyID: c.CompanyID, EmployeeID: c.Subject}
}
