// Package aggregate derives launch missions from the space objects that share
// a mission correlation key.
package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agentstation/orbitalguard/pkg/catalog"
	"github.com/agentstation/orbitalguard/pkg/errors"
)

// TieBreak picks one value of a categorical field for a mission.
type TieBreak string

const (
	// TieBreakMax takes the lexicographically greatest uppercased value.
	TieBreakMax TieBreak = "max"
	// TieBreakMostFrequent takes the most common uppercased value; equal
	// counts fall back to the lexicographically greatest.
	TieBreakMostFrequent TieBreak = "most_frequent"
)

// ParseTieBreak converts a configuration string into a TieBreak. An empty
// string selects TieBreakMax.
func ParseTieBreak(s string) (TieBreak, error) {
	switch TieBreak(s) {
	case "", TieBreakMax:
		return TieBreakMax, nil
	case TieBreakMostFrequent:
		return TieBreakMostFrequent, nil
	default:
		return "", errors.NewConfigError("tie_break", fmt.Sprintf("unknown tie-break %q: must be max or most_frequent", s), errors.ErrInvalidInput)
	}
}

type group struct {
	date      *string
	countries []string
	sites     []string
	count     int
}

// Aggregate groups objects by launch mission id, skipping objects without
// one, and returns one mission per group sorted by id. The launch date is the
// earliest non-null date and the payload count is the size of the group.
func Aggregate(objects []catalog.SpaceObject, tb TieBreak) []catalog.LaunchMission {
	groups := make(map[string]*group)
	for _, o := range objects {
		if o.LaunchMissionID == nil || *o.LaunchMissionID == "" {
			continue
		}
		g, ok := groups[*o.LaunchMissionID]
		if !ok {
			g = &group{}
			groups[*o.LaunchMissionID] = g
		}
		g.count++
		if o.LaunchDate != nil && (g.date == nil || *o.LaunchDate < *g.date) {
			d := *o.LaunchDate
			g.date = &d
		}
		if o.Country != nil {
			g.countries = append(g.countries, strings.ToUpper(*o.Country))
		}
		if o.LaunchSite != nil {
			g.sites = append(g.sites, strings.ToUpper(*o.LaunchSite))
		}
	}

	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	missions := make([]catalog.LaunchMission, 0, len(ids))
	for _, id := range ids {
		g := groups[id]
		missions = append(missions, catalog.LaunchMission{
			LaunchMissionID: id,
			LaunchDate:      g.date,
			Country:         pick(g.countries, tb),
			LaunchSite:      pick(g.sites, tb),
			PayloadCount:    g.count,
		})
	}
	return missions
}

func pick(values []string, tb TieBreak) *string {
	if len(values) == 0 {
		return nil
	}
	if tb == TieBreakMostFrequent {
		return mostFrequent(values)
	}
	best := values[0]
	for _, v := range values[1:] {
		if v > best {
			best = v
		}
	}
	return &best
}

func mostFrequent(values []string) *string {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	var best string
	bestN := 0
	for v, n := range counts {
		if n > bestN || (n == bestN && v > best) {
			best, bestN = v, n
		}
	}
	return &best
}
