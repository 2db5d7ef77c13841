// Package keybox seals small secrets, such as saved auth keys, for storage
// at rest.
//
// Sealing uses authenticated encryption with the cipher picked for the
// host: AES-GCM where the architecture has hardware AES, ChaCha20-Poly1305
// otherwise. The nonce is generated per seal and prepended to the output.
package keybox
