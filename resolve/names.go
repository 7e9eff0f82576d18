package resolve

import (
	"fmt"
	"strings"

	"github.com/kaptinlin/builder/dependency"
)

// RemoteRepository is the default artifact repository root used when
// building a Dependency's canonical remote locations. Language backends
// that resolve against a different host may build their own URLs instead
// of calling BuildNames.
const RemoteRepository = "https://repo1.maven.org/maven2"

// BuildNames builds the canonical remote parent URL, cache-relative
// directory, classified base filename and base filename for dep. The base
// filename is "{name}-{version}"; the classified one additionally appends
// "-{classifier}" when dep declares one. When versionInURL is false the
// version segment is omitted from the URL, which is how a version-checking
// resolver fetches directory listing metadata.
func BuildNames(dep *dependency.Dependency, versionInURL bool) (directoryURL, cacheDir, classifiedName, baseName string) {
	group := strings.ReplaceAll(dep.Group, ".", "/")
	directoryURL = fmt.Sprintf("%s/%s/%s", RemoteRepository, group, dep.Name)
	cacheDir = dep.Name

	baseName = fmt.Sprintf("%s-%s", dep.Name, dep.Version)
	classifiedName = baseName
	if dep.Classifier != "" {
		classifiedName = fmt.Sprintf("%s-%s", baseName, dep.Classifier)
	}

	if versionInURL {
		directoryURL = directoryURL + "/" + dep.Version
	}

	return directoryURL, cacheDir, classifiedName, baseName
}
