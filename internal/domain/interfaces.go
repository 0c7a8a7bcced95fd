package domain

// RecordStore owns the id -> Record mapping and its persistence.
type RecordStore interface {
	Add(id, name string, age int, grade string, subjects []string) (Status, error)
	Get(id string) (Record, bool)
	Update(id string, p Patch) (Status, error)
	Delete(id string) (Status, error)
	List() []Record
	Search(term string) []Record
	ExportToCSV(path string) (Status, error)
	Export(path string, format ExportFormat) (Status, error)
}

// Verifier is the stored, salted hash of the login passphrase.
type Verifier struct {
	V    int    `json:"v"`
	Salt []byte `json:"salt"`
	N    int    `json:"scrypt_N"`
	R    int    `json:"scrypt_r"`
	P    int    `json:"scrypt_p"`
	Hash []byte `json:"hash"`
}

// CredentialStore persists the login verifier.
type CredentialStore interface {
	SaveVerifier(v Verifier) error
	LoadVerifier() (Verifier, bool, error)
}

// Prompter asks the user for input. ReadSecret must not echo.
type Prompter interface {
	ReadSecret(label string) (string, error)
}

// AuthService gates access to the record store behind a local passphrase.
type AuthService interface {
	Enrolled() (bool, error)
	Enroll(passphrase string) error
	Verify(passphrase string) (bool, error)
	Login(p Prompter) (bool, error)
	// Fingerprint identifies the enrolled verifier for display.
	Fingerprint() (string, error)
}
