package federation

// Version selects which federation directive set and SDL decoration rules
// apply to a subgraph schema.
type Version int

const (
	Version1 Version = 1
	Version2 Version = 2
)

// DefaultVersion applies whenever the configuration doesn't name a version.
const DefaultVersion = Version1

// Config carries the federation settings block from the auto-schema
// configuration. Settings holds the raw block, version key included.
type Config struct {
	Version  Version
	Settings map[string]interface{}
}

// ResolveVersion determines the federation version and optional config from
// the auto-schema configuration value. Malformed or absent input never
// errors; it falls back to DefaultVersion with no config.
//
// The recognized shapes are:
//   - anything that isn't a settings map: default version, no config
//   - a map without a "federation" key: default version, no config
//   - "federation" holding a bare number: that version, no config
//   - "federation" holding a map: version from its "version" key, config
//     carrying the whole map
func ResolveVersion(autoSchema interface{}) (Version, *Config) {
	if cfg, ok := autoSchema.(*Config); ok && cfg != nil {
		return knownVersionOrDefault(cfg.Version), cfg
	}

	settings, ok := autoSchema.(map[string]interface{})
	if !ok {
		return DefaultVersion, nil
	}

	fed, ok := settings["federation"]
	if !ok || fed == nil {
		return DefaultVersion, nil
	}

	if fedSettings, ok := fed.(map[string]interface{}); ok {
		version := coerceVersion(fedSettings["version"])
		return version, &Config{
			Version:  version,
			Settings: fedSettings,
		}
	}

	return coerceVersion(fed), nil
}

func coerceVersion(v interface{}) Version {
	switch v := v.(type) {
	case Version:
		return knownVersionOrDefault(v)
	case int:
		return knownVersionOrDefault(Version(v))
	case int32:
		return knownVersionOrDefault(Version(v))
	case int64:
		return knownVersionOrDefault(Version(v))
	case float64:
		return knownVersionOrDefault(Version(int(v)))
	default:
		return DefaultVersion
	}
}

func knownVersionOrDefault(v Version) Version {
	switch v {
	case Version1, Version2:
		return v
	default:
		return DefaultVersion
	}
}
