package config

// GetEnvAsBool exposes getEnvAsBool for tests.
var GetEnvAsBool = getEnvAsBool

// GetEnvAsInt exposes getEnvAsInt for tests.
var GetEnvAsInt = getEnvAsInt
