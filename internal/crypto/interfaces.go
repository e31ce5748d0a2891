package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns account passwords into self-describing Argon2id
// hashes and checks passwords against them. It knows nothing about users
// or storage.
//
// Encoded form (PHC string format):
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt b64>$<key b64>
type PasswordHasher interface {
	// Hash derives a key from password with a fresh random salt and returns
	// the encoded hash.
	Hash(password string) (string, error)

	// Verify reports whether password matches encoded. The parameters stored
	// in encoded are used, so hashes survive a change of the defaults.
	// A malformed hash is an error, a wrong password is not.
	Verify(password, encoded string) (bool, error)
}
