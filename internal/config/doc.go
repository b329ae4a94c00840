// Package config assembles the settings of both binaries.
//
// A field takes the first non-zero value from, in order: the environment,
// command-line flags, the JSON file named by CONFIG or -c, and the
// defaults in defaults.go. [GetServerConfig] and [GetClientConfig] return
// validated views of the merged [StructuredConfig].
package config
