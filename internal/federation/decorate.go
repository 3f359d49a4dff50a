package federation

import (
	"fmt"
	"strings"
)

// DefaultFederationSpecURL is linked from federation 2 subgraph SDL unless
// the configuration overrides it.
const DefaultFederationSpecURL = "https://specs.apollo.dev/federation/v2.3"

const federationSpecURLPrefix = "https://specs.apollo.dev/federation/"

// defaultV2Imports is the import list of the generated @link pragma.
var defaultV2Imports = []string{
	"@composeDirective",
	"@extends",
	"@external",
	"@inaccessible",
	"@interfaceObject",
	"@key",
	"@override",
	"@provides",
	"@requires",
	"@shareable",
	"@tag",
}

// DecorateTypeDefs rewrites printed subgraph SDL with version-specific
// federation constructs before it is parsed again for federation schema
// construction. Federation 2 schemas get a schema extension linking the
// federation spec; everything else passes through unchanged.
func DecorateTypeDefs(version Version, config *Config, sdl string) string {
	switch version {
	case Version2:
		if strings.Contains(sdl, federationSpecURLPrefix) {
			// The SDL already links a federation spec; honor it.
			return sdl
		}
		return linkPragma(config) + "\n\n" + sdl
	default:
		return sdl
	}
}

func linkPragma(config *Config) string {
	url := DefaultFederationSpecURL
	imports := defaultV2Imports

	if config != nil && config.Settings != nil {
		if v, ok := config.Settings["specUrl"].(string); ok && v != "" {
			url = v
		}
		if vs, ok := config.Settings["imports"].([]interface{}); ok && len(vs) != 0 {
			imports = make([]string, 0, len(vs))
			for _, v := range vs {
				if s, ok := v.(string); ok {
					imports = append(imports, s)
				}
			}
		}
	}

	quoted := make([]string, len(imports))
	for i, name := range imports {
		quoted[i] = fmt.Sprintf("%q", name)
	}

	return fmt.Sprintf(
		"extend schema @link(url: %q, import: [%s])",
		url, strings.Join(quoted, ", "),
	)
}
