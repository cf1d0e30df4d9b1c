// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package socialgraph

import (
	"sort"

	"github.com/tomtom215/curatorgraph/internal/graph"
	"github.com/tomtom215/curatorgraph/internal/models"
)

// DefaultCastAffinity is the affinity a music record contributes when the
// user has no interaction on the cast it came from.
const DefaultCastAffinity = 1.0

// castKey identifies one user's interactions with one cast.
type castKey struct {
	userID int64
	castID string
}

// userArtist identifies one user-artist affinity.
type userArtist struct {
	userID int64
	artist string
}

// BuildUserArtistGraph builds the undirected bipartite user/artist affinity
// graph.
//
// Each interaction with a cast adds its social weight to (user, cast). Each
// complete music record then adds the (user, cast) weight to the affinity of
// (user, artist), or DefaultCastAffinity when the user never interacted with
// that cast. Only pairs with positive affinity produce nodes and edges.
func BuildUserArtistGraph(music []models.MusicRecord, edges []models.InteractionEdge) *graph.Graph {
	weights := SocialWeights()

	castWeights := make(map[castKey]float64)
	for _, e := range edges {
		if e.CastID == "" {
			continue
		}
		castWeights[castKey{e.SourceUserID, e.CastID}] += weights.Weight(e.EdgeType)
	}

	var order []userArtist
	affinity := make(map[userArtist]float64)
	for _, r := range music {
		if !r.Complete() {
			continue
		}
		w, ok := castWeights[castKey{r.UserID, r.CastID}]
		if !ok {
			w = DefaultCastAffinity
		}
		k := userArtist{r.UserID, r.ArtistName}
		if _, seen := affinity[k]; !seen {
			order = append(order, k)
		}
		affinity[k] += w
	}

	g := graph.NewUndirected()
	for _, k := range order {
		w := affinity[k]
		if w <= 0 {
			continue
		}
		userKey := BipartiteUserKey(k.userID)
		artistKey := BipartiteArtistKey(k.artist)
		if !g.HasNode(userKey) {
			g.AddNode(userKey, graph.NodeAttrs{Type: graph.NodeTypeUser, UserID: k.userID})
		}
		if !g.HasNode(artistKey) {
			g.AddNode(artistKey, graph.NodeAttrs{Type: graph.NodeTypeArtist, ArtistName: k.artist})
		}
		g.SetEdge(userKey, artistKey, w)
	}
	return g
}

// ArtistAffinities returns the artists a user is connected to in the
// bipartite graph, keyed by artist name.
func ArtistAffinities(bipartite *graph.Graph, userID int64) map[string]float64 {
	out := make(map[string]float64)
	for _, e := range bipartite.OutEdges(BipartiteUserKey(userID)) {
		attrs, ok := bipartite.Node(e.To)
		if !ok || attrs.Type != graph.NodeTypeArtist {
			continue
		}
		out[attrs.ArtistName] = e.Weight
	}
	return out
}

// ArtistAffinityList returns the user's artists ordered by affinity,
// strongest first. Ties keep bipartite insertion order.
func ArtistAffinityList(bipartite *graph.Graph, userID int64) []ArtistAffinity {
	var out []ArtistAffinity
	for _, e := range bipartite.OutEdges(BipartiteUserKey(userID)) {
		attrs, ok := bipartite.Node(e.To)
		if !ok || attrs.Type != graph.NodeTypeArtist {
			continue
		}
		out = append(out, ArtistAffinity{ArtistName: attrs.ArtistName, Affinity: e.Weight})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Affinity > out[j].Affinity
	})
	return out
}

// ArtistAffinity is one user's affinity for one artist.
type ArtistAffinity struct {
	ArtistName string  `json:"artist_name"`
	Affinity   float64 `json:"affinity"`
}

// curatorStrength is one curator's weighted support for an artist.
type curatorStrength struct {
	userID   int64
	strength float64
}

// BuildArtistAuthorityGraph projects the bipartite graph onto artists.
//
// The strength of a curator for an artist is affinity * (1 + pagerank*10),
// with pagerank taken from curatorRank keyed by UserKey. A nil curatorRank
// means ranking failed and every curator gets a PageRank of 1.0; curators
// missing from a non-nil curatorRank get 0.
//
// Two artists are connected when they share at least one curator. The edge
// weight is the sum over shared curators of the smaller of the two
// strengths, so one hyper-connected curator cannot dominate every pair.
func BuildArtistAuthorityGraph(bipartite *graph.Graph, curatorRank map[string]float64) *graph.Graph {
	rankOf := func(userID int64) float64 {
		if curatorRank == nil {
			return 1.0
		}
		return curatorRank[UserKey(userID)]
	}

	var artists []string
	curators := make(map[string][]curatorStrength)
	for _, key := range bipartite.Nodes() {
		attrs, _ := bipartite.Node(key)
		if attrs.Type != graph.NodeTypeArtist {
			continue
		}
		for _, e := range bipartite.OutEdges(key) {
			user, ok := bipartite.Node(e.To)
			if !ok || user.Type != graph.NodeTypeUser {
				continue
			}
			if _, seen := curators[attrs.ArtistName]; !seen {
				artists = append(artists, attrs.ArtistName)
			}
			curators[attrs.ArtistName] = append(curators[attrs.ArtistName], curatorStrength{
				userID:   user.UserID,
				strength: e.Weight * (1.0 + rankOf(user.UserID)*10),
			})
		}
	}

	g := graph.NewUndirected()
	for _, a := range artists {
		g.AddNode(a, graph.NodeAttrs{Type: graph.NodeTypeArtist, ArtistName: a})
	}

	// Invert to curator -> artists so only pairs that share a curator are visited.
	type support struct {
		artist   int
		strength float64
	}
	var curatorOrder []int64
	byCurator := make(map[int64][]support)
	for i, a := range artists {
		for _, c := range curators[a] {
			if _, seen := byCurator[c.userID]; !seen {
				curatorOrder = append(curatorOrder, c.userID)
			}
			byCurator[c.userID] = append(byCurator[c.userID], support{artist: i, strength: c.strength})
		}
	}

	type pair struct{ a, b int }
	weights := make(map[pair]float64)
	common := make(map[pair]int)
	for _, id := range curatorOrder {
		list := byCurator[id]
		for x := 0; x < len(list); x++ {
			for y := x + 1; y < len(list); y++ {
				p := pair{list[x].artist, list[y].artist}
				if p.a > p.b {
					p.a, p.b = p.b, p.a
				}
				weights[p] += min(list[x].strength, list[y].strength)
				common[p]++
			}
		}
	}

	pairs := make([]pair, 0, len(weights))
	for p := range weights {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})

	for _, p := range pairs {
		w := weights[p]
		if w <= 0 {
			continue
		}
		a, b := artists[p.a], artists[p.b]
		g.SetEdge(a, b, w)
		g.SetCommonCurators(a, b, common[p])
	}
	return g
}
