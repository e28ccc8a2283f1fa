package reconcile

import "strings"

// Route holds the structured halves of an "origin - destination" string.
type Route struct {
	Origin      string
	Destination string
}

// SplitRoute splits a display route into origin and destination on the
// first hyphen boundary. Later hyphens stay inside the destination, so a
// compound destination survives intact. Fewer than two non-empty segments
// yields an empty destination.
func SplitRoute(text string) Route {
	parts := strings.Split(text, "-")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			segments = append(segments, trimmed)
		}
	}

	switch len(segments) {
	case 0:
		return Route{}
	case 1:
		return Route{Origin: segments[0]}
	}
	return Route{
		Origin:      segments[0],
		Destination: strings.Join(segments[1:], " - "),
	}
}

// JoinRoute renders the structured pair back into the display form. When
// only one side is present that side is returned alone; when neither is,
// the result is empty.
func JoinRoute(origin, destination string) string {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)

	switch {
	case origin != "" && destination != "":
		return origin + " - " + destination
	case origin != "":
		return origin
	default:
		return destination
	}
}

// RouteNeedsReview reports whether a destination still contains an internal
// hyphen. The split heuristic cannot tell a compound place name from an
// unsplit route, so such records are flagged for manual review instead of
// being re-split.
func RouteNeedsReview(destination string) bool {
	return strings.Contains(destination, "-")
}
