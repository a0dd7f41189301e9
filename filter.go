package titlekit

// KeepTitle reports whether a cleaned basic record passes the movie filter:
// it must be a movie, must not be flagged adult, and must have started in
// 1970 or later. An absent isAdult does not count as adult. Records failing
// the filter are dropped silently; this is selection, not an error.
func KeepTitle(t Title) bool {
	if t.TitleType == nil || *t.TitleType != "movie" {
		return false
	}
	if t.IsAdult != nil && *t.IsAdult {
		return false
	}
	return t.StartYear != nil && *t.StartYear >= 1970
}

// KeepRating reports whether a cleaned rating record passes the rating
// filter: the average rating must be present and at least 5.0.
func KeepRating(r Rating) bool {
	return r.AverageRating != nil && *r.AverageRating >= 5.0
}
