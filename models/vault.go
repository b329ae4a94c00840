package models

import "time"

// BlobVersion is the only encrypted blob format version understood.
const BlobVersion = 1

// EncryptedBlob is the self-describing ciphertext container. Everything
// needed to decrypt it except the passphrase travels with it.
type EncryptedBlob struct {
	V       int    `json:"v"`
	Iters   int    `json:"iters"`
	SaltB64 string `json:"saltB64"`
	IVB64   string `json:"ivB64"`
	CtB64   string `json:"ctB64"`
}

// VaultMeta is the plaintext metadata stored next to a remote blob. The
// sync engine compares snapshots using only this, without decrypting.
type VaultMeta struct {
	UpdatedAt     int64   `json:"updatedAt"`
	Schema        int     `json:"schema"`
	LastEventHash *string `json:"lastEventHash"`
}

// VaultRecord is the single remote row per account.
//
// Blob is base64 of the JSON encoding of an [EncryptedBlob].
type VaultRecord struct {
	UserID     int64     `json:"-"`
	Blob       string    `json:"blob"`
	Meta       VaultMeta `json:"meta"`
	AppVersion string    `json:"appVersion"`
	DeviceID   string    `json:"deviceId,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table backing [VaultRecord].
func (VaultRecord) TableName() string {
	return "vaults"
}

// VaultVersion is one snapshot in the bounded remote history.
type VaultVersion struct {
	UserID     int64     `json:"-"`
	Blob       string    `json:"blob"`
	Meta       VaultMeta `json:"meta"`
	AppVersion string    `json:"appVersion"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName returns the name of the database table backing [VaultVersion].
func (VaultVersion) TableName() string {
	return "vault_versions"
}

// VersionInfo is the listing form of a [VaultVersion], without the blob.
type VersionInfo struct {
	CreatedAt  time.Time `json:"createdAt"`
	AppVersion string    `json:"appVersion"`
	Meta       VaultMeta `json:"meta"`
}

// VaultUploadRequest carries a blob to the server. Hash is the hex
// HMAC-SHA256 of the JSON encoding of Record and protects the body in transit.
type VaultUploadRequest struct {
	Record VaultRecord `json:"record"`
	Hash   string      `json:"hash"`
}

// VersionUploadRequest is the [VaultUploadRequest] counterpart for history rows.
type VersionUploadRequest struct {
	Version VaultVersion `json:"version"`
	Hash    string       `json:"hash"`
}

// VersionListResponse is returned by the version listing endpoint.
type VersionListResponse struct {
	Versions []VersionInfo `json:"versions"`
	Length   int           `json:"length"`
}

// PruneResponse reports how many history rows were removed.
type PruneResponse struct {
	Deleted int64 `json:"deleted"`
}
