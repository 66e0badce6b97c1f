package cryptography

var TokenHasher Hasher = argonHasher{}
