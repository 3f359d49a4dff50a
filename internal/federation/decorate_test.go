package federation

import (
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
)

func TestDecorateTypeDefs(t *testing.T) {
	t.Parallel()

	sdl := heredoc.Doc(`
		type Product @key(fields: "upc") {
			upc: String!
		}
	`)

	t.Run("version1PassesThrough", func(t *testing.T) {
		t.Parallel()

		decorated := DecorateTypeDefs(Version1, nil, sdl)
		if decorated != sdl {
			t.Errorf("v1 SDL should pass through unchanged, got %s", decorated)
		}
	})

	t.Run("version2LinksFederationSpec", func(t *testing.T) {
		t.Parallel()

		decorated := DecorateTypeDefs(Version2, nil, sdl)
		if !strings.HasPrefix(decorated, `extend schema @link(url: "https://specs.apollo.dev/federation/v2.3"`) {
			t.Errorf("v2 SDL should start with the @link pragma, got %s", decorated)
		}
		if !strings.Contains(decorated, `"@key"`) {
			t.Errorf("@link should import @key, got %s", decorated)
		}
		if !strings.Contains(decorated, sdl) {
			t.Error("original SDL should be preserved")
		}
	})

	t.Run("alreadyLinkedPassesThrough", func(t *testing.T) {
		t.Parallel()

		linked := DecorateTypeDefs(Version2, nil, sdl)
		again := DecorateTypeDefs(Version2, nil, linked)
		if again != linked {
			t.Error("already linked SDL should not be decorated twice")
		}
	})

	t.Run("configOverridesSpecURLAndImports", func(t *testing.T) {
		t.Parallel()

		config := &Config{
			Version: Version2,
			Settings: map[string]interface{}{
				"specUrl": "https://specs.apollo.dev/federation/v2.0",
				"imports": []interface{}{"@key", "@shareable"},
			},
		}
		decorated := DecorateTypeDefs(Version2, config, sdl)
		if !strings.Contains(decorated, `url: "https://specs.apollo.dev/federation/v2.0"`) {
			t.Errorf("configured spec URL should win, got %s", decorated)
		}
		if !strings.Contains(decorated, `import: ["@key", "@shareable"]`) {
			t.Errorf("configured imports should win, got %s", decorated)
		}
	})
}
