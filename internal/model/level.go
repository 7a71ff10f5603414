package model

// VolunteerLevel is the stored, staff-assigned level of a volunteer. It is
// not recomputed from points; staff set it through the admin screens.
type VolunteerLevel string

const (
	LevelUnderFollowUp      VolunteerLevel = "under_follow_up"
	LevelProjectResponsible VolunteerLevel = "project_responsible"
	LevelResponsible        VolunteerLevel = "responsible"
)

// Older accounts still carry the original medal-style level values. They map
// onto the current three tiers and are accepted anywhere a level is read.
var legacyLevelAliases = map[string]VolunteerLevel{
	"bronze":   LevelUnderFollowUp,
	"silver":   LevelUnderFollowUp,
	"gold":     LevelProjectResponsible,
	"platinum": LevelResponsible,
	"diamond":  LevelResponsible,
}

// NormalizeLevel maps any stored level value (current or legacy) to one of
// the three tiers. Unknown or empty values fall back to the lowest tier.
func NormalizeLevel(stored string) VolunteerLevel {
	switch VolunteerLevel(stored) {
	case LevelUnderFollowUp, LevelProjectResponsible, LevelResponsible:
		return VolunteerLevel(stored)
	}
	if lvl, ok := legacyLevelAliases[stored]; ok {
		return lvl
	}
	return LevelUnderFollowUp
}

// LevelMeta is the display metadata for a level tier.
type LevelMeta struct {
	Code  VolunteerLevel `json:"code"`
	Label LocalizedText  `json:"label"`
	Color string         `json:"color"`
	Icon  string         `json:"icon"`
}

var levelMetaTable = map[VolunteerLevel]LevelMeta{
	LevelUnderFollowUp: {
		Code:  LevelUnderFollowUp,
		Label: LocalizedText{EN: "Under Follow-up", AR: "تحت المتابعة"},
		Color: "#9CA3AF",
		Icon:  "🕊️",
	},
	LevelProjectResponsible: {
		Code:  LevelProjectResponsible,
		Label: LocalizedText{EN: "Project Responsible", AR: "مسؤول مشروع"},
		Color: "#F59E0B",
		Icon:  "📚",
	},
	LevelResponsible: {
		Code:  LevelResponsible,
		Label: LocalizedText{EN: "Responsible", AR: "مسؤول"},
		Color: "#8B5CF6",
		Icon:  "🏅",
	},
}

// MetaForLevel returns display metadata for any stored level value,
// normalizing legacy aliases first.
func MetaForLevel(stored string) LevelMeta {
	return levelMetaTable[NormalizeLevel(stored)]
}

// progressThresholds is the fixed point ladder behind the dashboard progress
// bar. It is independent of the stored level.
var progressThresholds = []int{51, 151, 351}

// LevelProgress is the dashboard progress-bar figure for a point total.
type LevelProgress struct {
	Fraction      float64 `json:"fraction"`
	NextThreshold int     `json:"next_threshold"`
}

// ProgressToward maps a point total to its progress toward the next ladder
// threshold. At or above the top threshold the bar is pinned to 100% with
// the top threshold as the target.
func ProgressToward(points int) LevelProgress {
	if points < 0 {
		points = 0
	}

	for _, t := range progressThresholds {
		if points < t {
			return LevelProgress{
				Fraction:      float64(points) / float64(t),
				NextThreshold: t,
			}
		}
	}

	top := progressThresholds[len(progressThresholds)-1]
	return LevelProgress{Fraction: 1.0, NextThreshold: top}
}
