package tables

// UsersTable is the default table of credential rows.
const UsersTable = "users"

// UserRecord is a credential row: partition key is the username (or email),
// row key the credential identifier. PasswordHash and PasswordSalt are
// base64 argon2id values; Password is a legacy plaintext column that is read
// but never used for authentication.
type UserRecord struct {
	PartitionKey string `json:"PartitionKey"`
	RowKey       string `json:"RowKey"`
	Email        string `json:"Email,omitempty"`
	Password     string `json:"Password,omitempty"`
	PasswordHash string `json:"PasswordHash,omitempty"`
	PasswordSalt string `json:"PasswordSalt,omitempty"`
}

// HasPasswordHash reports whether the record carries a salted hash.
func (u UserRecord) HasPasswordHash() bool {
	return u.PasswordHash != "" && u.PasswordSalt != ""
}
