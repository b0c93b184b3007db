package domain

// User is a back-office operator allowed to use the accounting API.
type User struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	IsActive     bool   `json:"is_active"`
	AuditFields
}
