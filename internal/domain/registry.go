package domain

import (
	"fmt"
	"strings"
)

// Mode selects how the registry matches devices to categories.
type Mode string

const (
	// ModeExclusive counts every device in exactly one category.
	ModeExclusive Mode = "exclusive"
	// ModeOverlapping matches each category's raw predicate, so a device may
	// appear under several tabs.
	ModeOverlapping Mode = "overlapping"
)

// ParseMode parses a mode name. The empty string means ModeExclusive.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeExclusive:
		return ModeExclusive, nil
	case ModeOverlapping:
		return ModeOverlapping, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// CategoryInfo describes one tab of the dashboard.
type CategoryInfo struct {
	Key         Category           `json:"key"`
	DisplayName string             `json:"display_name"`
	Match       func(*Device) bool `json:"-"`
}

var overlappingMatchers = map[Category]func(*Device) bool{
	CategoryServerPhysical:   IsServerPhysicalStrict,
	CategoryServerVM:         IsServerVM,
	CategoryCellPhoneATT:     IsCellPhoneATT,
	CategoryCellPhoneVerizon: IsCellPhoneVerizon,
	CategoryDLALIONLicense:   IsDLALIONLicense,
	CategoryDesktop:          IsDesktop,
	CategoryLaptop:           IsLaptop,
	CategoryOther:            matchesNoPredicate,
}

func matchesNoPredicate(d *Device) bool {
	f := Normalize(d)
	for _, r := range waterfall {
		if r.Match(f) {
			return false
		}
	}
	return true
}

// Registry returns the eight categories in tab order with the match function
// of the given mode. An unknown mode is treated as ModeExclusive.
func Registry(mode Mode) []CategoryInfo {
	out := make([]CategoryInfo, 0, len(categoryOrder))
	for _, c := range categoryOrder {
		info := CategoryInfo{Key: c, DisplayName: c.DisplayName()}
		if mode == ModeOverlapping {
			info.Match = overlappingMatchers[c]
		} else {
			key := c
			info.Match = func(d *Device) bool { return CategorizeExclusive(d) == key }
		}
		out = append(out, info)
	}
	return out
}

// Filter returns the devices for which match reports true, in input order.
func Filter(devices []*Device, match func(*Device) bool) []*Device {
	out := make([]*Device, 0)
	for _, d := range devices {
		if match(d) {
			out = append(out, d)
		}
	}
	return out
}

// CategoryCount is the number of devices in one category.
type CategoryCount struct {
	Key         Category `json:"key"`
	DisplayName string   `json:"display_name"`
	Count       int      `json:"count"`
}

// Counts is a per-category tally of a device set.
type Counts struct {
	Mode       Mode            `json:"mode"`
	Categories []CategoryCount `json:"categories"`
	Total      int             `json:"total"`
}

// Sum adds up the per-category counts. It equals Total in exclusive mode.
func (c Counts) Sum() int {
	n := 0
	for _, cc := range c.Categories {
		n += cc.Count
	}
	return n
}

// PartitionOK reports whether every device was counted exactly once overall.
func (c Counts) PartitionOK() bool { return c.Sum() == c.Total }

// Get returns the count of category key, or 0.
func (c Counts) Get(key Category) int {
	for _, cc := range c.Categories {
		if cc.Key == key {
			return cc.Count
		}
	}
	return 0
}

// Count tallies devices per category in the given mode.
func Count(devices []*Device, mode Mode) Counts {
	if mode != ModeOverlapping {
		mode = ModeExclusive
	}
	out := Counts{Mode: mode, Total: len(devices)}

	if mode == ModeExclusive {
		tally := make(map[Category]int, len(categoryOrder))
		for _, d := range devices {
			tally[CategorizeExclusive(d)]++
		}
		for _, c := range categoryOrder {
			out.Categories = append(out.Categories, CategoryCount{Key: c, DisplayName: c.DisplayName(), Count: tally[c]})
		}
		return out
	}

	for _, info := range Registry(mode) {
		n := 0
		for _, d := range devices {
			if info.Match(d) {
				n++
			}
		}
		out.Categories = append(out.Categories, CategoryCount{Key: info.Key, DisplayName: info.DisplayName, Count: n})
	}
	return out
}
