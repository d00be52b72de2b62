package model

// User represents an end-user account as stored in the `users`
// table.  The json tags are omitted here because these structs are
// primarily used internally by the repository layer; handlers define
// separate response types with appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier (uuid string).
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Name         – display name shown on tickets.
type User struct {
	ID           string // users.id
	Email        string // users.email
	PasswordHash string // users.password
	Name         string // users.name
}

// Admin represents a console operator in the `admins` table.  Admins
// authenticate separately from users and carry the "admin" role in
// their JWT.
//
// Fields:
//  ID           – numeric identifier.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password.
type Admin struct {
	ID           int64  // admins.id
	Username     string // admins.username
	PasswordHash string // admins.password
}
