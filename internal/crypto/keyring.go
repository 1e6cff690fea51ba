package crypto

// Keyring stores the database encryption key outside the database file
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	ServiceName = "fatoura"
	KeyName     = "db-encryption-key"

	// EnvKey holds the key on platforms without a system keyring
	EnvKey = "FATOURA_DB_KEY"
)

// NewKeyring returns the best available keyring implementation
func NewKeyring() Keyring {
	return newPlatformKeyring()
}
