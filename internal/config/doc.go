// Package config assembles the settings shared by cmd/server and cmd/seed.
//
// Environment variables are read first, then command-line flags, then the
// optional JSON file named by -c or CONFIG; a non-zero value from a later
// source replaces the earlier one. Defaults fill whatever is still unset and
// validation rejects unusable combinations, e.g. sms delivery without a
// gateway URL. [GetStructuredConfig] runs the whole chain.
package config
