package auth

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pw")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pw" {
		t.Fatal("hash must not equal the plain password")
	}
	if !CheckPassword(hash, "s3cret-pw") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wrong-pw") {
		t.Fatal("wrong password accepted")
	}
}

func TestHashPassword_SaltUniqueness(t *testing.T) {
	first, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password must differ")
	}
	if !CheckPassword(first, "same-password") || !CheckPassword(second, "same-password") {
		t.Fatal("both hashes must verify")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	if CheckPassword("not-a-bcrypt-hash", "anything") {
		t.Fatal("malformed hash must not verify")
	}
}
