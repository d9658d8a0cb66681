// Package password implements salted password hashing and verification with
// Argon2id.
//
// # Output format
//
// Digests use the PHC string format:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// Hashing the same input twice yields different digests (fresh salt per
// call). Verification recomputes the digest with the parameters embedded in
// the stored string and compares in constant time; a mismatch returns false,
// never an error.
//
// # Architecture boundaries
//
// This package owns hashing and verification only. Password policy and
// credential storage belong to the caller.
package password
