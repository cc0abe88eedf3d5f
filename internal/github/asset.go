package github

import (
	"fmt"
	"strings"
)

// TemplateAssetPrefix returns the name prefix of the template archive for
// an agent and script type, e.g. "quynhluu-template-claude-sh-".
func TemplateAssetPrefix(prefix, agentKey, script string) string {
	return fmt.Sprintf("%s-template-%s-%s-", prefix, agentKey, script)
}

// SelectTemplateAsset finds the zip asset matching agent and script.
func SelectTemplateAsset(release *Release, prefix, agentKey, script string) (Asset, error) {
	want := TemplateAssetPrefix(prefix, agentKey, script)
	for _, a := range release.Assets {
		if strings.HasPrefix(a.Name, want) && strings.HasSuffix(a.Name, ".zip") {
			return a, nil
		}
	}

	names := make([]string, 0, len(release.Assets))
	for _, a := range release.Assets {
		names = append(names, a.Name)
	}
	return Asset{}, fmt.Errorf("no template matching %s*.zip in release %s (assets: %s)",
		want, release.Version, strings.Join(names, ", "))
}
