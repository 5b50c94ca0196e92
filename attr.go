/*
Copyright © 2024 the SWEGrid authors.
This file is part of SWEGrid.

SWEGrid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

SWEGrid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with SWEGrid.  If not, see <http://www.gnu.org/licenses/>.
*/

package swegrid

import (
	"strings"

	"github.com/spf13/cast"
)

// The cdf library hands back global attribute values as one of []uint8,
// []int16, []int32, []float32, []float64 or string. Producers are not
// consistent about which numeric type they use for grid attributes, so the
// coercions below take the first element of whatever numeric slice is
// present, the way NetCDF attribute accessors do.

// attrFloat coerces an attribute value to a float64. ok is false for a
// missing attribute (nil), an empty slice, or an unparseable string.
func attrFloat(v interface{}) (float64, bool) {
	switch a := v.(type) {
	case []uint8:
		if len(a) > 0 {
			return float64(a[0]), true
		}
	case []int16:
		if len(a) > 0 {
			return float64(a[0]), true
		}
	case []int32:
		if len(a) > 0 {
			return float64(a[0]), true
		}
	case []float32:
		if len(a) > 0 {
			return float64(a[0]), true
		}
	case []float64:
		if len(a) > 0 {
			return a[0], true
		}
	case string:
		f, err := cast.ToFloat64E(strings.TrimSpace(a))
		return f, err == nil
	}
	return 0, false
}

// attrInt coerces an attribute value to an int, truncating floating-point
// values the way the NetCDF as-int accessor does.
func attrInt(v interface{}) (int, bool) {
	switch a := v.(type) {
	case string:
		i, err := cast.ToIntE(strings.TrimSpace(a))
		return i, err == nil
	default:
		f, ok := attrFloat(v)
		if !ok {
			return 0, false
		}
		return int(f), true
	}
}
