package endpoint

import (
	"sort"

	"github.com/doytsujin/of-protocol/ofp"
)

// sortedDesc returns a sorted-descending copy of versions with
// duplicates removed.
func sortedDesc(versions []ofp.Version) []ofp.Version {
	seen := make(map[ofp.Version]bool, len(versions))
	out := make([]ofp.Version, 0, len(versions))
	for _, v := range versions {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}

// greatestCommonVersion merges two sorted-descending version sets and
// returns their highest shared element, or ok=false if they share
// nothing. Both sets are walked at most once.
func greatestCommonVersion(client, server []ofp.Version) (ofp.Version, bool) {
	i, j := 0, 0
	for i < len(client) && j < len(server) {
		switch {
		case client[i] == server[j]:
			return client[i], true
		case client[i] > server[j]:
			i++
		default:
			j++
		}
	}
	return 0, false
}

// serverVersions extracts the server's advertised version set from a
// HELLO message: its versionbitmap element if present, otherwise the
// singleton set containing the HELLO header's own version.
func serverVersions(hello *ofp.Hello, headerVersion ofp.Version) []ofp.Version {
	for _, elem := range hello.Elements {
		bitmap, ok := elem.(*ofp.HelloElemVersionBitmap)
		if !ok {
			continue
		}

		var versions []ofp.Version
		for word, bits := range bitmap.Bitmaps {
			for bit := 0; bit < 32; bit++ {
				if bits&(1<<uint(bit)) == 0 {
					continue
				}
				versions = append(versions, ofp.Version(word*32+bit))
			}
		}
		return versions
	}

	return []ofp.Version{headerVersion}
}

// negotiateVersion implements decide_on_version: given the versions
// this client is configured with and the peer's HELLO, returns the
// negotiated version or a structured negotiation error.
func negotiateVersion(clientVersions []ofp.Version, headerVersion ofp.Version, hello *ofp.Hello) (ofp.Version, error) {
	client := sortedDesc(clientVersions)
	cv := client[0]

	if cv.SupportsVersionBitmap() {
		if cv == headerVersion {
			return cv, nil
		}

		server := sortedDesc(serverVersions(hello, headerVersion))
		if v, ok := greatestCommonVersion(client, server); ok {
			return v, nil
		}
		return 0, &NoCommonVersionError{Client: client, Server: server}
	}

	for _, v := range client {
		if v == headerVersion {
			return v, nil
		}
	}
	return 0, &UnsupportedVersionError{Version: headerVersion}
}
