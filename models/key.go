package models

type DecryptionKey struct {
	Key           []byte `json:"key"`            // key for AES decryption
	IV            []byte `json:"iv"`             // initialization vector
	Method        string `json:"method"`         // e.g. "AES-128"
	URI           string `json:"uri,omitempty"`  // key endpoint when the playlist carries one
	MediaSequence int    `json:"media_sequence"` // first HLS segment sequence number
}
