package http

import (
	xutil "CreditLens/pkg/util"
)

// ParseFloat parses a finite float. Returns (v, true) on success.
func ParseFloat(s string) (float64, bool) { return xutil.ParseFloat(s) }
