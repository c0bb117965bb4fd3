package diagnose

import (
	"sort"
	"strings"
)

// labKeyAliases maps the lab names seen on real reports to the canonical
// parameter keys the condition rules use.
var labKeyAliases = map[string]string{
	"hba1c":                 "hba1c",
	"a1c":                   "hba1c",
	"glycated_hemoglobin":   "hba1c",
	"glycosylated_hb":       "hba1c",
	"fbs":                   "fasting_glucose",
	"fasting_blood_sugar":   "fasting_glucose",
	"fasting_glucose":       "fasting_glucose",
	"ppbs":                  "postprandial_glucose",
	"post_prandial_glucose": "postprandial_glucose",
	"postprandial_glucose":  "postprandial_glucose",
	"systolic":              "systolic_bp",
	"bp_systolic":           "systolic_bp",
	"systolic_bp":           "systolic_bp",
	"diastolic":             "diastolic_bp",
	"bp_diastolic":          "diastolic_bp",
	"diastolic_bp":          "diastolic_bp",
}

// normalizeLabs canonicalizes lab keys. Unknown keys pass through
// lowercased so new rules can reference them without code changes.
// On a collision the canonical spelling wins over any alias; between
// aliases the first in sorted key order wins, keeping the result
// independent of map iteration order.
func normalizeLabs(labs map[string]float64) map[string]float64 {
	keys := make([]string, 0, len(labs))
	for key := range labs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make(map[string]float64, len(labs))
	for _, key := range keys {
		lowered := strings.ToLower(strings.TrimSpace(key))
		canonical := lowered
		if mapped, ok := labKeyAliases[lowered]; ok {
			canonical = mapped
		}
		if _, exists := out[canonical]; !exists || lowered == canonical {
			out[canonical] = labs[key]
		}
	}
	return out
}
