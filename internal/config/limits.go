package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxFolderNameLength = 255

	// MaxFolderDescriptionLength is the maximum length for folder descriptions.
	MaxFolderDescriptionLength = 1000

	// MaxRequestBodyBytes caps JSON request bodies accepted by the server.
	MaxRequestBodyBytes = 1 << 20

	// MaxResponseBodyBytes caps backend responses read by the REST client.
	// Snapshots inline extracted file text, so this is generous.
	MaxResponseBodyBytes = 64 << 20
)
