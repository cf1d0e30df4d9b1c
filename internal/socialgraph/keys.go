// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package socialgraph

import (
	"strconv"
	"strings"
)

const (
	userPrefix   = "user_"
	artistPrefix = "artist_"
)

// UserKey returns the node key of a user in the user graphs.
func UserKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ParseUserKey parses a user graph node key.
func ParseUserKey(key string) (int64, bool) {
	id, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// BipartiteUserKey returns the node key of a user in the user-artist graph.
func BipartiteUserKey(id int64) string {
	return userPrefix + strconv.FormatInt(id, 10)
}

// BipartiteArtistKey returns the node key of an artist in the user-artist graph.
func BipartiteArtistKey(name string) string {
	return artistPrefix + name
}

// IsBipartiteArtistKey reports whether key names an artist node.
func IsBipartiteArtistKey(key string) bool {
	return strings.HasPrefix(key, artistPrefix)
}
