package descriptor

import (
	"strings"

	"github.com/beevik/etree"

	"payarakit/internal/product"
)

// pluginElements returns every plugin element whose groupId and artifactId
// match coord, from the top-level build and from each profile's build.
func pluginElements(root *etree.Element, coord product.Coordinate) []*etree.Element {
	if root == nil {
		return nil
	}
	var matches []*etree.Element
	for _, build := range buildElements(root) {
		for _, plugins := range build.SelectElements("plugins") {
			for _, plugin := range plugins.SelectElements("plugin") {
				if childText(plugin, "groupId") == coord.GroupID &&
					childText(plugin, "artifactId") == coord.ArtifactID {
					matches = append(matches, plugin)
				}
			}
		}
	}
	return matches
}

// buildElements lists project/build followed by project/profiles/profile/build
// in document order.
func buildElements(root *etree.Element) []*etree.Element {
	builds := root.SelectElements("build")
	for _, profiles := range root.SelectElements("profiles") {
		for _, profile := range profiles.SelectElements("profile") {
			builds = append(builds, profile.SelectElements("build")...)
		}
	}
	return builds
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

func extractMaven(root *etree.Element, coord product.Coordinate) Flags {
	var flags Flags
	for _, plugin := range pluginElements(root, coord) {
		for _, cfg := range plugin.SelectElements("configuration") {
			for _, child := range cfg.ChildElements() {
				value := strings.TrimSpace(child.Text())
				if set, ok := boolFlags[child.Tag]; ok && value == "true" {
					set(&flags, true)
					continue
				}
				if set, ok := stringFlags[child.Tag]; ok && value != "" {
					set(&flags, value)
				}
			}
		}
	}
	return flags
}

// mavenName is the project's <name>, falling back to its <artifactId>.
func mavenName(root *etree.Element) string {
	if root == nil {
		return ""
	}
	if name := childText(root, "name"); name != "" {
		return name
	}
	return childText(root, "artifactId")
}
