package util

import (
    "math"
    "strconv"
    "strings"
)

// ParseFloat parses a finite decimal string. Returns (v, true) if it worked.
func ParseFloat(s string) (float64, bool) {
    s = strings.TrimSpace(s)
    if s == "" {
        return 0, false
    }
    v, err := strconv.ParseFloat(s, 64)
    if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
        return 0, false
    }
    return v, true
}

// SplitList splits a comma separated list and drops empty items.
func SplitList(s string) []string {
    parts := strings.Split(s, ",")
    out := make([]string, 0, len(parts))
    for _, p := range parts {
        if p = strings.TrimSpace(p); p != "" {
            out = append(out, p)
        }
    }
    return out
}
