package models

// Export file type tags.
const (
	ExportFileType      = "lifeos_vault_export"
	EmergencyBundleType = "lifeos_emergency_bundle"
)

// ExportIntegrity is the integrity summary recorded at export time.
type ExportIntegrity struct {
	OK            bool    `json:"ok"`
	Restricted    bool    `json:"restricted"`
	LastEventHash *string `json:"lastEventHash"`
}

// ExportMeta describes an export file.
type ExportMeta struct {
	Type       string          `json:"type"`
	ExportedAt int64           `json:"exportedAt"`
	AppVersion string          `json:"appVersion"`
	Build      string          `json:"build"`
	Integrity  ExportIntegrity `json:"integrity"`
}

// ExportFile is the portable encrypted backup. Signature is the SHA-256 hex
// of the JSON encoding of {meta, vault} and detects accidental or naive
// modification. It is not a MAC: anyone can recompute it, and
// authenticity comes from the AEAD inside Vault.
type ExportFile struct {
	Meta      ExportMeta    `json:"meta"`
	Vault     EncryptedBlob `json:"vault"`
	Signature string        `json:"signature"`
}

// SignedExportBody is the part of an [ExportFile] covered by its signature.
type SignedExportBody struct {
	Meta  ExportMeta    `json:"meta"`
	Vault EncryptedBlob `json:"vault"`
}

// EmergencyReport is the plaintext diagnostic part of an emergency bundle.
type EmergencyReport struct {
	ExportedAt int64           `json:"exportedAt"`
	AppVersion string          `json:"appVersion"`
	Build      string          `json:"build"`
	Integrity  ExportIntegrity `json:"integrity"`
	Tasks      int             `json:"tasks"`
	Events     int             `json:"events"`
}

// EmergencyBundle is an encrypted snapshot together with a plaintext
// report, meant for recovery on another device.
type EmergencyBundle struct {
	Type   string          `json:"type"`
	Report EmergencyReport `json:"report"`
	Vault  EncryptedBlob   `json:"vault"`
}
